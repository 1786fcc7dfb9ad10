// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package lspext defines the language-server protocol extensions used by
// capa developer tooling.
package lspext

import (
	"encoding/json"
	"fmt"
)

// ServerStatusMethod is the method of the server status notification.
const ServerStatusMethod = "experimental/serverStatus"

// Health is the coarse health of the language server.
type Health uint8

const (
	HealthOK Health = iota
	HealthWarning
	HealthError
)

var healthNames = [...]string{
	HealthOK:      "ok",
	HealthWarning: "warning",
	HealthError:   "error",
}

func (h Health) String() string {
	if int(h) < len(healthNames) {
		return healthNames[h]
	}
	return fmt.Sprintf("Health(%d)", uint8(h))
}

// MarshalJSON encodes h as its camelCase name.
func (h Health) MarshalJSON() ([]byte, error) {
	if int(h) >= len(healthNames) {
		return nil, fmt.Errorf("lspext: invalid health %d", uint8(h))
	}
	return json.Marshal(healthNames[h])
}

// UnmarshalJSON decodes a camelCase health name.
func (h *Health) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for i, name := range healthNames {
		if name == s {
			*h = Health(i)
			return nil
		}
	}
	return fmt.Errorf("lspext: unknown health %q", s)
}

// ServerStatusParams are the parameters of the server status notification.
type ServerStatusParams struct {
	Health    Health  `json:"health"`
	Quiescent bool    `json:"quiescent"`
	Message   *string `json:"message"`
}

// Notification is a JSON-RPC notification envelope.
type Notification struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// NewServerStatus builds a server status notification.
func NewServerStatus(p ServerStatusParams) (Notification, error) {
	params, err := json.Marshal(p)
	if err != nil {
		return Notification{}, err
	}
	return Notification{JSONRPC: "2.0", Method: ServerStatusMethod, Params: params}, nil
}

// ParseServerStatus extracts the parameters of a server status notification.
func ParseServerStatus(n Notification) (ServerStatusParams, error) {
	var p ServerStatusParams
	if n.Method != ServerStatusMethod {
		return p, fmt.Errorf("lspext: unexpected method %q", n.Method)
	}
	if err := json.Unmarshal(n.Params, &p); err != nil {
		return p, fmt.Errorf("lspext: decode %s: %w", ServerStatusMethod, err)
	}
	return p, nil
}
