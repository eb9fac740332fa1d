package simulate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestLive_SingleToast(t *testing.T) {
	defer goleak.VerifyNone(t)

	step := helloStep(0, "a")
	step.Duration = ms(100)

	tl, err := Live(context.Background(), &Scenario{
		Name:   "live",
		Sample: 20,
		Steps:  []Step{step},
	})
	require.NoError(t, err)

	assert.Equal(t, "live", tl.Scenario)
	assert.Equal(t, []string{"shown", "hiding", "closed"}, eventsOf(tl, "a"))
	require.Len(t, tl.Events, 3)
	assert.GreaterOrEqual(t, tl.Events[1].At, int64(100))
	assert.GreaterOrEqual(t, tl.Events[2].At, tl.Events[1].At)
	assert.GreaterOrEqual(t, tl.End, tl.Events[2].At)

	require.NotEmpty(t, tl.Frames)
	assert.Empty(t, tl.Frames[len(tl.Frames)-1].Toasts)
}

func TestLive_Until(t *testing.T) {
	defer goleak.VerifyNone(t)

	tl, err := Live(context.Background(), &Scenario{
		Sample: 10,
		Until:  60,
		Steps:  []Step{helloStep(0, "a")},
	})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, tl.End, int64(60))
	assert.Equal(t, []string{"shown"}, eventsOf(tl, "a"))
}

func TestLive_Canceled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Live(ctx, &Scenario{Steps: []Step{helloStep(100, "a")}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLive_InvalidScenario(t *testing.T) {
	_, err := Live(context.Background(), &Scenario{Steps: []Step{{Action: ActionShow}}})
	var stepErr *StepError
	assert.ErrorAs(t, err, &stepErr)
}
