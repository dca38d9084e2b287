package domain

import (
	"crypto/sha1" //nolint:gosec // non-cryptographic fingerprint
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ServerStatus is the flattened view of one poll of a FiveM server.
// Pointer fields are nil when the server did not report the value.
type ServerStatus struct {
	ServerID    string    `json:"server_id"`
	Address     string    `json:"address"`
	Online      bool      `json:"online"`
	Error       string    `json:"error,omitempty"`
	Hostname    *string   `json:"hostname,omitempty"`
	MapName     *string   `json:"map_name,omitempty"`
	PlayerCount *int      `json:"player_count,omitempty"`
	MaxPlayers  *int      `json:"max_players,omitempty"`
	OneSync     *bool     `json:"onesync,omitempty"`
	Discord     *string   `json:"discord,omitempty"`
	Players     []string  `json:"players,omitempty"`
	PolledAt    time.Time `json:"polled_at"`
}

// Fingerprint identifies the observable state of a status, ignoring the poll
// time and the order of player names. Equal fingerprints mean nothing changed.
// Error is left out: an offline server fails on whichever endpoint answers
// first, so its text varies between polls while the server stays down.
func (s ServerStatus) Fingerprint() string {
	players := append([]string(nil), s.Players...)
	sort.Strings(players)

	var b strings.Builder
	fmt.Fprintf(&b, "%s|%s|%t|", s.ServerID, s.Address, s.Online)
	fmt.Fprintf(&b, "%s|%s|%s|%s|%s|%s|",
		deref(s.Hostname), deref(s.MapName), deref(s.PlayerCount),
		deref(s.MaxPlayers), deref(s.OneSync), deref(s.Discord))
	b.WriteString(strings.Join(players, ","))

	sum := sha1.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func deref[T any](p *T) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprint(*p)
}
