// Command recruitctl talks to a running talent-vault server.
//
//	recruitctl -url http://localhost:80 upload -name "Jane Doe" -skills Java,SQL -file cv.pdf
//	recruitctl list -skill Python
//	recruitctl link -id <candidate id>
//	recruitctl skills
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fadilmartias/talent-vault/internal/client"
	"github.com/fadilmartias/talent-vault/internal/skill"
)

const defaultTimeout = 30 * time.Second

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "recruitctl:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	global := flag.NewFlagSet("recruitctl", flag.ContinueOnError)
	baseURL := global.String("url", "http://localhost:80", "Base URL of the service")
	timeout := global.Duration("timeout", defaultTimeout, "HTTP request timeout")
	if err := global.Parse(args); err != nil {
		return err
	}
	rest := global.Args()
	if len(rest) == 0 {
		return errors.New("missing command (upload, list, link, skills)")
	}

	c := client.New(*baseURL, *timeout)
	cmd, cmdArgs := rest[0], rest[1:]
	switch cmd {
	case "upload":
		return runUpload(ctx, c, cmdArgs, stdout)
	case "list":
		return runList(ctx, c, cmdArgs, stdout)
	case "link":
		return runLink(ctx, c, cmdArgs, stdout)
	case "skills":
		skills, err := c.Skills(ctx)
		if err != nil {
			return err
		}
		return printJSON(stdout, skills)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runUpload(ctx context.Context, c *client.Client, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	name := fs.String("name", "", "Candidate name")
	skills := fs.String("skills", "", "Comma separated skills")
	path := fs.String("file", "", "Résumé file to upload")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return errors.New("upload: -file is required")
	}

	f, err := os.Open(*path)
	if err != nil {
		return err
	}
	defer f.Close()

	candidate, err := c.Upload(ctx, client.UploadRequest{
		Name:     *name,
		Skills:   skill.Normalize(skill.CSV(*skills)),
		FileName: filepath.Base(*path),
		File:     f,
	})
	if err != nil {
		return err
	}
	return printJSON(stdout, candidate)
}

func runList(ctx context.Context, c *client.Client, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	filter := fs.String("skill", "", "Only candidates with this exact skill")
	if err := fs.Parse(args); err != nil {
		return err
	}
	candidates, err := c.Candidates(ctx, *filter)
	if err != nil {
		return err
	}
	return printJSON(stdout, candidates)
}

func runLink(ctx context.Context, c *client.Client, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("link", flag.ContinueOnError)
	id := fs.String("id", "", "Candidate id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("link: -id is required")
	}
	link, err := c.DownloadLink(ctx, *id)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, link)
	return err
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
