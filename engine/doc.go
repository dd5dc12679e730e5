// Package engine drives a docker-compatible container CLI.
//
// Commands are composed from the struct-tagged flag sets in the options
// package and executed through a [Runner]. A Runner has two modes: [Captured],
// used for image builds, streams output to the user and keeps its tail for
// error reports; [Interactive], used for container sessions, hands the
// invoking terminal to the child.
//
// Example usage:
//
//	e := engine.New("docker", engine.NewExecRunner(os.Stdin, os.Stdout, os.Stderr))
//	err := e.Build(ctx, options.Build{Tag: "dev", File: "Dockerfile"}, ".", cwd,
//	    engine.MergeEnv(os.Environ(), engine.BuildKitEnv))
package engine
