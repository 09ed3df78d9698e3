// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/jeranaias/assettrack-tui/internal/api"
	"github.com/jeranaias/assettrack-tui/internal/config"
	"github.com/jeranaias/assettrack-tui/internal/report"
	"github.com/jeranaias/assettrack-tui/internal/scan"
	"github.com/jeranaias/assettrack-tui/internal/session"
	"github.com/jeranaias/assettrack-tui/internal/ui/styles"
)

// =============================================================================
// SHARED SETUP
// =============================================================================

// Env bundles the services CLI handlers share with the TUI.
type Env struct {
	Config   *config.Config
	Client   *api.Client
	Sessions *session.Manager
	Sink     *report.Sink
}

// NewEnv loads configuration and opens the session store.
func NewEnv() (*Env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	config.SetGlobal(cfg)

	statePath, err := session.DefaultStatePath()
	if err != nil {
		return nil, err
	}
	store, err := session.OpenSQLiteStore(statePath)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	sink := report.NewSink()
	client := api.New(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout()),
		api.WithLogger(sink))

	return &Env{
		Config:   cfg,
		Client:   client,
		Sessions: session.NewManager(store),
		Sink:     sink,
	}, nil
}

// Close releases the env's resources.
func (e *Env) Close() {
	if e.Sessions != nil {
		e.Sessions.Close()
	}
}

func callCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// =============================================================================
// ACCOUNT COMMANDS
// =============================================================================

// promptLine reads one line with editing support.
func promptLine(prompt string) (string, error) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	value, err := line.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", errors.New("aborted")
		}
		return "", err
	}
	return strings.TrimSpace(value), nil
}

// promptPassword reads a password without echo.
func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// HandleLogin signs in interactively and persists the session.
func HandleLogin(args Args) error {
	env, err := NewEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	email, err := promptLine("email: ")
	if err != nil {
		return err
	}
	password, err := promptPassword("password: ")
	if err != nil {
		return err
	}

	ctx, cancel := callCtx()
	defer cancel()
	result, err := env.Client.Login(ctx, api.Credentials{Email: email, Password: password})
	if err != nil {
		return errors.New(api.UserMessage(err))
	}
	if err := env.Sessions.Save(session.Session{
		UserID:   result.UserID,
		UserName: result.UserName,
		Role:     result.Role,
	}); err != nil {
		return err
	}

	if !args.Quiet {
		fmt.Println(styles.RenderSuccess("Signed in as " + result.UserName))
	}
	return nil
}

// HandleRegister creates an account interactively.
func HandleRegister(args Args) error {
	env, err := NewEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	name, err := promptLine("name: ")
	if err != nil {
		return err
	}
	email, err := promptLine("email: ")
	if err != nil {
		return err
	}
	password, err := promptPassword("password: ")
	if err != nil {
		return err
	}
	role := session.RoleUser
	if len(args.Raw) > 0 && args.Raw[0] == "admin" {
		role = session.RoleAdmin
	}

	ctx, cancel := callCtx()
	defer cancel()
	err = env.Client.Register(ctx, api.RegisterPayload{
		Name: name, Email: email, Password: password, Role: role,
	})
	if err != nil {
		return errors.New(api.UserMessage(err))
	}

	if !args.Quiet {
		fmt.Println(styles.RenderSuccess("Account created. Run 'assettrack login' to sign in."))
	}
	return nil
}

// HandleLogout clears the stored session.
func HandleLogout(args Args) error {
	env, err := NewEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if _, ok := env.Sessions.Current(); !ok {
		if !args.Quiet {
			fmt.Println("No session to clear.")
		}
		return nil
	}
	if err := env.Sessions.Clear(); err != nil {
		return err
	}
	if !args.Quiet {
		fmt.Println(styles.RenderSuccess("Signed out."))
	}
	return nil
}

// =============================================================================
// STATUS / CONFIG
// =============================================================================

// HandleStatus reports connectivity and session state.
func HandleStatus(args Args) error {
	env, err := NewEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	fmt.Printf("service:  %s\n", env.Config.API.BaseURL)

	ctx, cancel := callCtx()
	defer cancel()
	if _, err := env.Client.ListInventory(ctx); err != nil {
		fmt.Println("reachable: " + styles.RenderError(api.UserMessage(err)))
	} else {
		fmt.Println("reachable: " + styles.RenderSuccess("yes"))
	}

	if sess, ok := env.Sessions.Current(); ok {
		fmt.Printf("session:  %s (%s)\n", sess.DisplayName(), sess.Role)
	} else {
		fmt.Println("session:  none")
	}
	return nil
}

// HandleConfig shows or edits configuration.
func HandleConfig(args Args) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	switch args.Subcommand {
	case "", "show":
		fmt.Printf("api.base_url  = %s\n", cfg.API.BaseURL)
		fmt.Printf("api.timeout   = %ds\n", cfg.API.TimeoutSecs)
		fmt.Printf("ui.theme      = %s\n", cfg.UI.Theme)
		fmt.Printf("export.dir    = %s\n", orDefault(cfg.Export.Dir, "(current directory)"))
		fmt.Printf("scan.source   = %s\n", orDefault(cfg.Scan.Source, "(unset)"))
		fmt.Printf("scan.max_fps  = %d\n", cfg.Scan.MaxFPS)
		return nil

	case "set":
		if args.ConfigKey == "" {
			return errors.New("usage: assettrack config set KEY VALUE")
		}
		if err := applyConfigKey(cfg, args.ConfigKey, args.ConfigVal); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return err
		}
		fmt.Printf("set %s = %s\n", args.ConfigKey, args.ConfigVal)
		return nil

	case "path":
		path, err := config.PathTOML()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil

	default:
		return fmt.Errorf("unknown config subcommand %q", args.Subcommand)
	}
}

func applyConfigKey(cfg *config.Config, key, val string) error {
	switch key {
	case "api.base_url":
		cfg.API.BaseURL = val
	case "api.timeout":
		secs, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("api.timeout needs a number of seconds, got %q", val)
		}
		cfg.API.TimeoutSecs = secs
	case "ui.theme":
		cfg.UI.Theme = val
	case "export.dir":
		cfg.Export.Dir = val
	case "scan.source":
		cfg.Scan.Source = val
	case "scan.max_fps":
		fps, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("scan.max_fps needs a number, got %q", val)
		}
		cfg.Scan.MaxFPS = fps
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// =============================================================================
// EXPORT / CODES
// =============================================================================

// HandleExportLogs writes one day of the activity log to a file. The
// sink only holds this process's entries, so the command is most useful
// after batch operations in the same invocation; an empty day refuses to
// produce a file.
func HandleExportLogs(args Args) error {
	env, err := NewEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	day := time.Now()
	if args.Day != "" {
		day, err = time.ParseInLocation("2006-01-02", args.Day, time.Local)
		if err != nil {
			return fmt.Errorf("date must be YYYY-MM-DD, got %q", args.Day)
		}
	}

	dir := args.Output
	if dir == "" {
		dir = env.Config.Export.Dir
	}

	path, err := report.ExportDay(env.Sink, dir, day)
	if errors.Is(err, report.ErrNoEntries) {
		fmt.Println("No log entries for " + day.Format("2006-01-02") + "; nothing exported.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Println(styles.RenderSuccess("Exported " + path))
	return nil
}

// HandleBarcode renders a code image for a payload.
func HandleBarcode(args Args) error {
	if args.Payload == "" {
		return errors.New("usage: assettrack barcode PAYLOAD")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	dir := args.Output
	if dir == "" {
		dir = cfg.Export.Dir
	}

	var (
		rendered scan.Rendering
		base     string
	)
	if args.AsBarcode {
		rendered, err = scan.BarcodeRendering(args.Payload)
		base = "barcode-" + args.Payload
	} else {
		rendered, err = scan.QRRendering(args.Payload)
		base = "qr-" + args.Payload
	}
	if err != nil {
		return err
	}

	path := filepath.Join(dir, base+".png")
	if err := os.WriteFile(path, rendered.Detail, 0644); err != nil {
		return err
	}
	badgePath := filepath.Join(dir, base+"-badge.png")
	if err := os.WriteFile(badgePath, rendered.Badge, 0644); err != nil {
		return err
	}
	fmt.Println(styles.RenderSuccess("Saved " + path + " and " + badgePath))
	return nil
}

// HandleScan decodes a code from a frame directory or single image and
// resolves it against the service when a session exists.
func HandleScan(args Args) error {
	env, err := NewEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	sourcePath := args.Payload
	if sourcePath == "" {
		sourcePath = env.Config.Scan.Source
	}
	if sourcePath == "" {
		return errors.New("no scan source: pass a path or set scan.source")
	}

	var src scan.FrameSource
	info, err := os.Stat(sourcePath)
	if err != nil {
		return err
	}
	if info.IsDir() {
		src, err = scan.NewDirSource(sourcePath)
		if err != nil {
			return err
		}
	} else {
		src = scan.NewFileSource(sourcePath)
	}

	scanner := scan.NewScanner(src,
		scan.WithMaxFPS(env.Config.Scan.MaxFPS),
		scan.WithLogger(env.Sink))
	defer scanner.Close()

	ctx, cancel := callCtx()
	defer cancel()
	payload, err := scanner.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Println("decoded: " + payload)

	sess, ok := env.Sessions.Current()
	if !ok {
		return nil
	}
	result, err := env.Client.ScanCode(ctx, payload, sess.UserID)
	if err != nil {
		return errors.New(api.UserMessage(err))
	}
	if result.IssuedToUser {
		fmt.Println(styles.RenderSuccess("Matches your issued asset (request " + result.RequestID + ")."))
	} else {
		fmt.Println(styles.RenderWarning("Not one of your issued assets."))
	}
	return nil
}

// HandleVersion prints build information.
func HandleVersion(args Args) {
	fmt.Printf("assettrack %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
}
