// Package resources serves the admin UI's static assets. Production builds
// embed them in the binary; dev builds (-tags dev) read them from disk so
// edits show up without a rebuild.
package resources

// StaticDirectoryPath is the path to static assets from the project root.
const StaticDirectoryPath = "internal/ui/resources/static"
