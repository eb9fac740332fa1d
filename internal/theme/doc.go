// Package theme turns toast styles into GTK CSS and loads user stylesheets
// from ~/.config/toaststack/themes/ with hot reload. A bundled default sheet
// is used when no custom theme is configured.
package theme
