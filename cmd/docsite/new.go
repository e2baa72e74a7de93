package main

import (
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/eringen/docsite/scaffold"
)

// NewCmd scaffolds a documentation project.
type NewCmd struct {
	Name    string `arg:"" help:"Project name or Go module path."`
	Product string `name:"product" default:"consul" help:"Product identity of the new site."`
	NoTidy  bool   `name:"no-tidy" help:"Skip go mod tidy in the new project."`
}

func (n *NewCmd) Run() error {
	dir, err := runNew(".", n.Name, n.Product)
	if err != nil {
		return err
	}
	if !n.NoTidy {
		tidy(dir)
	}
	fmt.Println()
	fmt.Println("Done! Next steps:")
	fmt.Println()
	fmt.Printf("  cd %s\n", dir)
	fmt.Println("  go run . serve --watch")
	fmt.Println()
	fmt.Println("Add pages under pages/docs and list them in data/docs-navigation.yaml.")
	return nil
}

// scaffoldData holds the template variables passed to every scaffold template.
type scaffoldData struct {
	ProjectName string
	ModuleName  string
	SiteName    string
	Product     string
}

// runNew writes the scaffold for name below parent and returns the project
// directory.
func runNew(parent, name, product string) (string, error) {
	// Derive project directory name from the last path segment.
	dirName := name
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		dirName = name[idx+1:]
	}
	if dirName == "" {
		return "", fmt.Errorf("invalid project name %q", name)
	}
	outDir := filepath.Join(parent, dirName)

	if _, err := os.Stat(outDir); err == nil {
		return "", fmt.Errorf("directory %q already exists", outDir)
	}

	data := scaffoldData{
		ProjectName: dirName,
		ModuleName:  name,
		SiteName:    toTitle(dirName),
		Product:     product,
	}

	fmt.Printf("Creating new docsite project: %s\n\n", dirName)

	root := "templates"
	err := fs.WalkDir(scaffold.Templates, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		// Compute the output path, stripping the .tmpl suffix.
		outPath := filepath.Join(outDir, relPath)
		outPath = strings.TrimSuffix(outPath, ".tmpl")

		// Dotfiles are stored without the dot so embed keeps them.
		switch filepath.Base(outPath) {
		case "dotenv":
			outPath = filepath.Join(filepath.Dir(outPath), ".env.example")
		case "gitignore":
			outPath = filepath.Join(filepath.Dir(outPath), ".gitignore")
		}

		if d.IsDir() {
			return os.MkdirAll(outPath, 0o755)
		}

		content, err := scaffold.Templates.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		tmpl, err := template.New(filepath.Base(path)).Parse(string(content))
		if err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return err
		}

		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outPath, err)
		}
		defer f.Close()

		if err := tmpl.Execute(f, data); err != nil {
			return fmt.Errorf("execute template %s: %w", path, err)
		}

		fmt.Printf("  created %s\n", outPath)
		return nil
	})
	if err != nil {
		return "", err
	}
	return outDir, nil
}

// tidy resolves dependencies and generates go.sum in dir.
func tidy(dir string) {
	fmt.Println("\nResolving Go dependencies...")
	cmd := exec.Command("go", "mod", "tidy")
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "\nWarning: go mod tidy failed: %v\n", err)
		fmt.Fprintf(os.Stderr, "Run 'cd %s && go mod tidy' manually after fixing.\n", dir)
	}
}

// toTitle converts a hyphenated or lowercase name to a title-case string.
// e.g. "consul-docs" -> "Consul Docs"
func toTitle(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "-", " "))
}
