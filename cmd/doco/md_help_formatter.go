package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
)

type DocCmd struct{}

func (c *DocCmd) Run(kctx *kong.Context) error {
	return MarkdownHelpPrinter(kong.HelpOptions{}, kctx)
}

// MarkdownHelpPrinter is a kong.HelpPrinter that formats help output as markdown.
func MarkdownHelpPrinter(options kong.HelpOptions, ctx *kong.Context) error {
	w := ctx.Stdout
	if w == nil {
		w = io.Discard
	}
	writeMarkdownHelp(w, ctx.Model, options)
	return nil
}

func writeMarkdownHelp(w io.Writer, app *kong.Application, options kong.HelpOptions) {
	fmt.Fprintf(w, "# %s\n\n", app.Name)
	if app.Help != "" && !options.NoAppSummary {
		fmt.Fprintf(w, "%s\n\n", app.Help)
	}

	var globalFlags []*kong.Flag
	for _, flag := range app.Flags {
		if !flag.Hidden && flag.Group == nil {
			globalFlags = append(globalFlags, flag)
		}
	}
	if len(globalFlags) > 0 {
		fmt.Fprintf(w, "## Global Flags\n\n")
		for _, flag := range globalFlags {
			writeFlag(w, flag)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "## Commands\n\n")
	writeCommands(w, app.Node, app.Name, 3)
}

func writeCommands(w io.Writer, node *kong.Node, prefix string, level int) {
	for _, child := range node.Children {
		if child.Hidden || child.Type != kong.CommandNode {
			continue
		}
		cmdPath := prefix + " " + child.Name
		fmt.Fprintf(w, "%s `%s`\n\n", strings.Repeat("#", level), cmdPath)
		if child.Help != "" {
			fmt.Fprintf(w, "%s\n\n", child.Help)
		}
		fmt.Fprintf(w, "**Usage:**\n\n```\n%s\n```\n\n", usageLine(cmdPath, child))

		var flags []*kong.Flag
		for _, flag := range child.Flags {
			if !flag.Hidden {
				flags = append(flags, flag)
			}
		}
		if len(flags) > 0 {
			fmt.Fprintf(w, "**Flags:**\n\n")
			for _, flag := range flags {
				writeFlag(w, flag)
			}
			fmt.Fprintln(w)
		}

		if len(child.Children) > 0 {
			writeCommands(w, child, cmdPath, level+1)
		}
	}
}

// writeFlag writes one flag as a markdown list item with its placeholder, env var and default.
func writeFlag(w io.Writer, flag *kong.Flag) {
	var sig strings.Builder
	if flag.Short != 0 {
		fmt.Fprintf(&sig, "`-%c, --%s`", flag.Short, flag.Name)
	} else {
		fmt.Fprintf(&sig, "`--%s`", flag.Name)
	}
	if !flag.IsBool() {
		fmt.Fprintf(&sig, " _%s_", flag.FormatPlaceHolder())
	}

	fmt.Fprintf(w, "- %s", sig.String())
	if flag.Help != "" {
		fmt.Fprintf(w, " - %s", flag.Help)
	}
	if len(flag.Envs) > 0 {
		fmt.Fprintf(w, " (env: `%s`)", strings.Join(flag.Envs, "`, `"))
	}
	if flag.Default != "" {
		fmt.Fprintf(w, " (default: `%s`)", flag.Default)
	}
	fmt.Fprintln(w)
}

func usageLine(cmdPath string, node *kong.Node) string {
	usage := cmdPath
	if len(node.Flags) > 0 {
		usage += " [flags]"
	}
	for _, arg := range node.Positional {
		name := strings.ToUpper(arg.Name)
		if arg.Required {
			usage += fmt.Sprintf(" <%s>", name)
		} else {
			usage += fmt.Sprintf(" [%s]", name)
		}
		if arg.Passthrough {
			usage += "..."
		}
	}
	return usage
}
