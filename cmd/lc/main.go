// Command lc parses l source files and reports diagnostics.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/lang-l/lc/internal/diag"
	"github.com/lang-l/lc/internal/driver"
	"github.com/lang-l/lc/internal/position"
)

func main() {
	if len(os.Args) < 2 {
		showUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "build":
		runBuild(os.Args[2:])
	case "ast":
		runAST(os.Args[2:])
	case "-help", "--help", "help":
		showUsage()
	default:
		fmt.Fprintf(os.Stderr, "lc: unknown command %q\n\n", os.Args[1])
		showUsage()
		os.Exit(1)
	}
}

func showUsage() {
	fmt.Println("lc - parse and check l source")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("    lc build [-watch] <path>")
	fmt.Println("    lc ast <path>")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("    lc build src/")
	fmt.Println("    lc build -watch src/")
	fmt.Println("    lc ast src/main.l")
}

func runBuild(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	watch := fs.Bool("watch", false, "reparse on every source change")
	fs.Parse(args)

	if fs.NArg() != 1 {
		log.Fatalf("build: expected exactly one path argument")
	}
	srcDir := fs.Arg(0)

	if *watch {
		err := driver.Watch(context.Background(), srcDir, reportLoad)
		if err != nil {
			log.Fatalf("watch failed: %v", err)
		}
		return
	}

	project, diags, err := driver.LoadProject(context.Background(), srcDir)
	reportLoad(project, diags, err)
	if err != nil || len(diags) > 0 {
		os.Exit(1)
	}
}

func reportLoad(project *driver.Project, diags []diag.Diagnostic, err error) {
	if err != nil {
		log.Printf("build failed: %v", err)
		return
	}

	if len(diags) > 0 {
		sm := position.NewSourceMap()
		for _, d := range diags {
			if sm.GetFile(d.FilePath) != nil {
				continue
			}
			if content, err := os.ReadFile(d.FilePath); err == nil {
				sm.AddFile(d.FilePath, string(content))
			}
		}
		fmt.Print(diag.NewRenderer(sm).Render(diags))
		return
	}

	fmt.Printf("parsed %d file(s) cleanly\n", len(project.Units))
}

func runAST(args []string) {
	fs := flag.NewFlagSet("ast", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() != 1 {
		log.Fatalf("ast: expected exactly one path argument")
	}

	unit, err := driver.ParseFile(fs.Arg(0))
	if err != nil {
		log.Fatalf("parse failed: %v", err)
	}

	for _, m := range unit.Modules {
		fmt.Printf("mod %s (%d item(s))\n", m.Name.Name, len(m.Contents))
	}
}
