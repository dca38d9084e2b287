package fivem

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// DynamicStatus mirrors dynamic.json.
type DynamicStatus struct {
	Clients    Field[int]
	MaxClients Field[int]
	Hostname   Field[string]
	MapName    Field[string]
	GameType   Field[string]
	Iv         Field[string]
}

// ServerInfo mirrors info.json. Vars holds every entry of the "vars" object
// rendered as a string.
type ServerInfo struct {
	Server              Field[string]
	Version             Field[int]
	EnhancedHostSupport Field[bool]
	OneSync             Field[bool]
	Discord             Field[string]
	Resources           []string
	Vars                map[string]string
}

// Player is one entry of players.json. Raw is the record exactly as the
// server sent it; the typed fields are convenience projections.
type Player struct {
	ID          Field[int]
	Name        Field[string]
	Ping        Field[int]
	Endpoint    Field[string]
	Identifiers []string
	Raw         json.RawMessage
}

// MarshalJSON emits the record unchanged.
func (p Player) MarshalJSON() ([]byte, error) {
	if len(p.Raw) == 0 {
		return []byte("null"), nil
	}
	return p.Raw, nil
}

// Snapshot is the combined view of all three endpoints at one point in time.
type Snapshot struct {
	Address string
	Dynamic DynamicStatus
	Info    ServerInfo
	Players []Player
}

func parseDynamic(body []byte) DynamicStatus {
	doc := gjson.ParseBytes(body)
	return DynamicStatus{
		Clients:    intField(doc, "clients"),
		MaxClients: intField(doc, "sv_maxclients"),
		Hostname:   stringField(doc, "hostname"),
		MapName:    stringField(doc, "mapname"),
		GameType:   stringField(doc, "gametype"),
		Iv:         stringField(doc, "iv"),
	}
}

func parseInfo(body []byte) ServerInfo {
	doc := gjson.ParseBytes(body)
	info := ServerInfo{
		Server:              stringField(doc, "server"),
		Version:             intField(doc, "version"),
		EnhancedHostSupport: boolField(doc, "enhancedHostSupport"),
		OneSync:             boolField(doc, "vars.onesync_enabled"),
		Discord:             stringField(doc, "vars.discord"),
	}
	if res, ok := lookup(doc, "resources"); ok && res.IsArray() {
		for _, r := range res.Array() {
			info.Resources = append(info.Resources, r.String())
		}
	}
	if vars, ok := lookup(doc, "vars"); ok && vars.IsObject() {
		info.Vars = make(map[string]string)
		vars.ForEach(func(k, v gjson.Result) bool {
			info.Vars[k.String()] = v.String()
			return true
		})
	}
	return info
}

func parsePlayers(body []byte) ([]Player, error) {
	doc := gjson.ParseBytes(body)
	if !doc.IsArray() {
		return nil, fmt.Errorf("%w: players.json is %s, want array", ErrUnexpectedBody, doc.Type)
	}
	entries := doc.Array()
	players := make([]Player, 0, len(entries))
	for _, e := range entries {
		p := Player{
			ID:       intField(e, "id"),
			Name:     stringField(e, "name"),
			Ping:     intField(e, "ping"),
			Endpoint: stringField(e, "endpoint"),
			Raw:      json.RawMessage(e.Raw),
		}
		if ids, ok := lookup(e, "identifiers"); ok && ids.IsArray() {
			for _, id := range ids.Array() {
				p.Identifiers = append(p.Identifiers, id.String())
			}
		}
		players = append(players, p)
	}
	return players, nil
}
