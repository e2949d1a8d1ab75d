// Package extsigner delegates challenge signing to an external helper
// command, the way hardware wallet bridges and credential helpers are
// usually integrated. The helper receives the wallet address and the
// challenge message as arguments and prints a JSON object with the
// signature, key and stake address on stdout. Private key material never
// enters this process.
package extsigner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/adawatch/adawatch/internal/walletauth"
)

// ErrNoSignCommand is returned when no helper command is configured.
var ErrNoSignCommand = errors.New("no wallet sign command configured")

// signaturePayload is the JSON object the helper prints on stdout.
type signaturePayload struct {
	Signature    string `json:"signature"`
	Key          string `json:"key"`
	StakeAddress string `json:"stake_address"`
}

type signer struct {
	command string
	args    []string
}

var _ walletauth.WalletSigner = (*signer)(nil)

// SignMessage implements walletauth.WalletSigner. It runs the helper as
//
//	<command> [args...] <address> <message>
//
// and decodes the JSON it prints.
func (s *signer) SignMessage(ctx context.Context, address, message string) (walletauth.Signature, error) {
	if s.command == "" {
		return walletauth.Signature{}, ErrNoSignCommand
	}

	args := append(append([]string(nil), s.args...), address, message)
	cmd := exec.CommandContext(ctx, s.command, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return walletauth.Signature{}, fmt.Errorf("sign command: %w: %s", err, msg)
		}

		return walletauth.Signature{}, fmt.Errorf("sign command: %w", err)
	}

	var payload signaturePayload
	if err := json.Unmarshal(stdout.Bytes(), &payload); err != nil {
		return walletauth.Signature{}, fmt.Errorf("decode sign command output: %w", err)
	}

	return walletauth.Signature{
		Signature:    payload.Signature,
		Key:          payload.Key,
		StakeAddress: payload.StakeAddress,
	}, nil
}

// New builds a signer around the given helper command line. The command
// string may carry extra arguments separated by spaces; the address and
// message are appended at the end.
func New(command string) *signer {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return &signer{}
	}

	return &signer{
		command: fields[0],
		args:    fields[1:],
	}
}
