package poller

import (
	"time"

	"github.com/Adda-Baaj/fivem-status/internal/domain"
	"github.com/Adda-Baaj/fivem-status/pkg/fivem"
	"github.com/Adda-Baaj/fivem-status/pkg/servers"
)

// BuildStatus flattens a snapshot into a ServerStatus. A non-nil pollErr
// yields an offline status carrying the error text.
func BuildStatus(srv servers.Server, address string, snap fivem.Snapshot, pollErr error, now time.Time) domain.ServerStatus {
	status := domain.ServerStatus{
		ServerID: srv.ID,
		Address:  address,
		PolledAt: now.UTC(),
	}
	if pollErr != nil {
		status.Error = pollErr.Error()
		return status
	}

	status.Online = true
	status.Hostname = fieldPtr(snap.Dynamic.Hostname)
	status.MapName = fieldPtr(snap.Dynamic.MapName)
	status.PlayerCount = fieldPtr(snap.Dynamic.Clients)
	status.MaxPlayers = fieldPtr(snap.Dynamic.MaxClients)
	status.OneSync = fieldPtr(snap.Info.OneSync)
	status.Discord = fieldPtr(snap.Info.Discord)

	for _, p := range snap.Players {
		if name, ok := p.Name.Get(); ok {
			status.Players = append(status.Players, name)
		}
	}
	return status
}

func fieldPtr[T any](f fivem.Field[T]) *T {
	v, ok := f.Get()
	if !ok {
		return nil
	}
	return &v
}
