package platform

// Package platform contains OS/platform integration glue: filesystem
// helpers and opening folders in the system file manager.
