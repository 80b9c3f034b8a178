package hal

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

var ErrUnsupportedURL = errors.New("unsupported url")

type hostNavigator struct {
	logger Logger
	dryRun bool
	exec   func(name string, args ...string) error
}

// newHostNavigator opens links with the OS opener. With dryRun the link is
// only logged.
func newHostNavigator(logger Logger, dryRun bool) *hostNavigator {
	return &hostNavigator{
		logger: logger,
		dryRun: dryRun,
		exec: func(name string, args ...string) error {
			return exec.Command(name, args...).Start()
		},
	}
}

func (n *hostNavigator) Open(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("nav: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("nav: %q: %w", raw, ErrUnsupportedURL)
	}

	if n.logger != nil {
		n.logger.WriteLineString("nav: open " + u.String())
	}
	if n.dryRun {
		return nil
	}

	name, args, err := opener(runtime.GOOS)
	if err != nil {
		return fmt.Errorf("nav: %w", err)
	}
	if err := n.exec(name, append(args, u.String())...); err != nil {
		return fmt.Errorf("nav: %s: %w", name, err)
	}
	return nil
}

func opener(goos string) (string, []string, error) {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", nil, nil
	case "darwin":
		return "open", nil, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler"}, nil
	default:
		return "", nil, ErrNotImplemented
	}
}
