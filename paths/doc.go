// Provides per-user paths for doco's own files.
//
// Paths follow XDG conventions on Linux and the platform-native locations
// elsewhere, with "doco" as the subdirectory under each base path. Project
// files (doco.yaml, the Dockerfile) live in the working directory and are
// not resolved here.
package paths
