package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/api"
	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/apperrors"
	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/cloudinary"
	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/gateway"
	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/logger"
	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/models"
	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/profileflow"
	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/registration"
	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/sessiongate"
	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/tokenstore"
)

const usage = `Usage: bingmine [flags] <command>

Commands:
  login <identifier>        Log in (password read from stdin)
  logout                    Drop the local session
  status                    Show session state
  register                  Run the sign-up wizard
  profile show              Show your profile
  profile edit [flags]      Edit profile fields and images
  requests list             List pending follow requests
  requests accept <id>      Accept a pending request
  requests reject <id>      Reject a pending request
  privacy <public|private>  Switch account privacy
  gate                      Run the local web gateway
`

type App struct {
	cfg    *Config
	logger logger.Logger
	store  *tokenstore.SQLiteStore
	client *api.Client

	in  *bufio.Reader
	out io.Writer
}

func NewApp(cfg *Config) (*App, error) {
	log := logger.NewLogger(cfg.LogLevel)

	path, err := cfg.ResolveCredentialsPath()
	if err != nil {
		return nil, fmt.Errorf("error while resolving credentials path. Err: %w", err)
	}

	store, err := tokenstore.OpenSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("error while opening credentials store. Err: %w", err)
	}

	app := &App{
		cfg:    cfg,
		logger: log,
		store:  store,
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	client, err := api.NewClient(api.Config{
		BaseURL: cfg.APIURL,
		Logger:  log,
		OnUnauthorized: func() {
			fmt.Fprintf(app.out, "Session expired. Please log in again (%s).\n", sessiongate.LoginPath)
		},
	}, store)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("error while creating api client. Err: %w", err)
	}
	app.client = client

	return app, nil
}

func (a *App) Close() error {
	return a.store.Close()
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return nil
	}

	switch args[0] {
	case "login":
		return a.login(ctx, args[1:])
	case "logout":
		return a.logout(ctx)
	case "status":
		return a.status(ctx)
	case "register":
		return a.register(ctx)
	case "profile":
		return a.profile(ctx, args[1:])
	case "requests":
		return a.requests(ctx, args[1:])
	case "privacy":
		return a.privacy(ctx, args[1:])
	case "gate":
		return a.gate(ctx)
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (a *App) login(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: bingmine login <identifier>")
	}

	password, err := a.prompt("Password: ")
	if err != nil {
		return err
	}

	result, err := a.client.Login(ctx, api.LoginInput{
		Identifier: args[0],
		Password:   password,
		DeviceInfo: "bingmine-cli (" + runtime.GOOS + ")",
		IPAddress:  api.PublicIP(ctx),
	})
	if err != nil {
		return err
	}

	message := result.Message
	if message == "" {
		message = "Login Successful"
	}
	fmt.Fprintln(a.out, message)
	return nil
}

func (a *App) logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) status(ctx context.Context) error {
	creds, err := a.store.Get(ctx)
	if errors.Is(err, apperrors.ErrNoCredentials) {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in (access token %s)\n", mask(creds.AccessToken))
	if expiresAt, err := tokenstore.Expiry(creds.AccessToken); err == nil {
		fmt.Fprintf(a.out, "Access token expires at %s\n", expiresAt.Format(time.RFC3339))
	}
	return nil
}

// register walks the four wizard steps interactively. A failed step stays
// current and may be retried; Ctrl-D abandons the flow entirely.
func (a *App) register(ctx context.Context) error {
	wizard, err := registration.New(a.client, a.logger)
	if err != nil {
		return err
	}

	for wizard.Step() != registration.StepComplete {
		var err error

		switch wizard.Step() {
		case registration.StepContact:
			err = a.submitContact(ctx, wizard)
		case registration.StepVerification:
			err = a.submitVerification(ctx, wizard)
		case registration.StepUsername:
			err = a.submitUsername(ctx, wizard)
		case registration.StepSecurity:
			err = a.submitSecurity(ctx, wizard)
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return errors.New("registration abandoned")
			}
			fmt.Fprintf(a.out, "Error: %v\n", err)
		}
	}

	fmt.Fprintf(a.out, "Account created successfully. Continue at %s\n", sessiongate.LoginPath)
	return nil
}

func (a *App) submitContact(ctx context.Context, wizard *registration.Wizard) error {
	fmt.Fprintln(a.out, "Step 1 of 4: contact details")
	email, err := a.prompt("Email: ")
	if err != nil {
		return err
	}
	phone, err := a.prompt("Phone: ")
	if err != nil {
		return err
	}

	if err := wizard.SubmitContact(ctx, registration.ContactInput{Email: email, Phone: phone}); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "OTPs sent to email and phone")
	return nil
}

func (a *App) submitVerification(ctx context.Context, wizard *registration.Wizard) error {
	fmt.Fprintln(a.out, "Step 2 of 4: verification")
	emailOTP, err := a.prompt("Email OTP: ")
	if err != nil {
		return err
	}
	phoneOTP, err := a.prompt("Phone OTP: ")
	if err != nil {
		return err
	}

	return wizard.SubmitVerification(ctx, registration.VerificationInput{EmailOTP: emailOTP, PhoneOTP: phoneOTP})
}

func (a *App) submitUsername(ctx context.Context, wizard *registration.Wizard) error {
	fmt.Fprintln(a.out, "Step 3 of 4: choose a username")
	username, err := a.prompt("Username: ")
	if err != nil {
		return err
	}

	return wizard.SubmitUsername(ctx, registration.UsernameInput{Username: username})
}

func (a *App) submitSecurity(ctx context.Context, wizard *registration.Wizard) error {
	fmt.Fprintln(a.out, "Step 4 of 4: secure your account")
	password, err := a.prompt("Password: ")
	if err != nil {
		return err
	}
	confirm, err := a.prompt("Confirm password: ")
	if err != nil {
		return err
	}

	return wizard.SubmitSecurity(ctx, registration.SecurityInput{Password: password, ConfirmPassword: confirm})
}

func (a *App) profile(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"show"}
	}

	switch args[0] {
	case "show":
		profile, err := a.client.Me(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "@%s (%s)\n", profile.Username, profile.Name)
		if profile.Bio != "" {
			fmt.Fprintln(a.out, profile.Bio)
		}
		fmt.Fprintf(a.out, "Account: %s\n", profile.AccountType)
		fmt.Fprintf(a.out, "Followers: %d  Following: %d  Posts: %d\n",
			profile.SocialStats.Followers, profile.SocialStats.Following, profile.SocialStats.Posts)
		fmt.Fprintf(a.out, "Joined: %s\n", profile.CreatedAt.Format("Jan 2006"))
		return nil
	case "edit":
		return a.profileEdit(ctx, args[1:])
	default:
		return fmt.Errorf("unknown profile command %q", args[0])
	}
}

func (a *App) profileEdit(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("profile edit", pflag.ContinueOnError)
	name := fs.String("name", "", "Display name")
	username := fs.String("username", "", "Username")
	bio := fs.String("bio", "", "Bio")
	avatarPath := fs.String("avatar", "", "Path to a new profile picture")
	bannerPath := fs.String("banner", "", "Path to a new banner picture")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Unchanged fields keep their current values, so fetch the profile first
	current, err := a.client.Me(ctx)
	if err != nil {
		return err
	}

	draft := profileflow.Draft{
		Name:             orDefault(*name, current.Name),
		Username:         orDefault(*username, current.Username),
		Bio:              orDefault(*bio, current.Bio),
		CurrentAvatarURL: current.ProfilePicURL,
		CurrentBannerURL: current.BannerPicURL,
	}

	var files []*os.File
	defer func() {
		for _, f := range files {
			_ = f.Close()
		}
	}()

	if *avatarPath != "" {
		f, err := os.Open(*avatarPath)
		if err != nil {
			return err
		}
		files = append(files, f)
		draft.Avatar = &profileflow.ImageFile{Filename: filepath.Base(*avatarPath), Content: f}
	}
	if *bannerPath != "" {
		f, err := os.Open(*bannerPath)
		if err != nil {
			return err
		}
		files = append(files, f)
		draft.Banner = &profileflow.ImageFile{Filename: filepath.Base(*bannerPath), Content: f}
	}

	editor := profileflow.NewEditor(a.client, cloudinary.NewUploader(), a.logger)
	if err := editor.Save(ctx, draft); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Profile updated successfully")
	return nil
}

func (a *App) requests(ctx context.Context, args []string) error {
	flow := profileflow.NewRequestsFlow(a.client, a.logger)

	if len(args) == 0 {
		args = []string{"list"}
	}

	switch args[0] {
	case "list":
		if err := flow.Load(ctx); err != nil {
			return err
		}
		requests := flow.List()
		if len(requests) == 0 {
			fmt.Fprintln(a.out, "No pending requests")
			return nil
		}
		for _, req := range requests {
			fmt.Fprintf(a.out, "%s  @%s (%s)  requested %s\n",
				req.RequesterID, req.Username, req.Name, req.RequestedAt.Format("2006-01-02"))
		}
		return nil
	case "accept", "reject":
		if len(args) != 2 {
			return fmt.Errorf("usage: bingmine requests %s <requester-id>", args[0])
		}
		if err := flow.Load(ctx); err != nil {
			return err
		}

		action := api.ActionAccept
		if args[0] == "reject" {
			action = api.ActionReject
		}

		result := flow.Respond(ctx, args[1], action)
		if result.State() == profileflow.RolledBack {
			return fmt.Errorf("failed to %s request: %w", args[0], result.Err())
		}
		fmt.Fprintf(a.out, "Request %sed\n", args[0])
		return nil
	default:
		return fmt.Errorf("unknown requests command %q", args[0])
	}
}

func (a *App) privacy(ctx context.Context, args []string) error {
	if len(args) != 1 || (args[0] != string(models.AccountPublic) && args[0] != string(models.AccountPrivate)) {
		return errors.New("usage: bingmine privacy <public|private>")
	}

	profile, err := a.client.Me(ctx)
	if err != nil {
		return err
	}

	flow := profileflow.NewPrivacyFlow(a.client, a.logger, profile.AccountType)
	result := flow.SetPrivate(ctx, args[0] == string(models.AccountPrivate))
	if result.State() == profileflow.RolledBack {
		return fmt.Errorf("failed to change account type: %w", result.Err())
	}

	fmt.Fprintf(a.out, "Account is now %s\n", args[0])
	return nil
}

// gate serves the local web front until the context is cancelled.
func (a *App) gate(ctx context.Context) error {
	srv := gateway.New(a.client, a.store, a.logger)

	go func() {
		<-ctx.Done()

		timeoutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(timeoutCtx); err != nil {
			a.logger.Error("Gateway shutdown error", "error", err)
		}
	}()

	a.logger.Info("Starting gateway", "addr", a.cfg.GatewayAddr)
	return srv.Listen(a.cfg.GatewayAddr)
}

func (a *App) prompt(label string) (string, error) {
	fmt.Fprint(a.out, label)

	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func mask(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
