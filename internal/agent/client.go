package agent

import "github.com/relaymon/agent/internal/settings"

// ClientIdentity is the client identity block (§3), read once from
// settings at construction time (the core treats the settings store as
// read-only).
type ClientIdentity struct {
	Name          string
	Subscriptions []string
	Signature     string
	SafeMode      bool
	Redact        []string
	SocketBind    string
	SocketPort    int
}

func loadClientIdentity(store settings.Store) ClientIdentity {
	bind := store.GetString("client.socket.bind", "127.0.0.1")
	port := store.Get("client.socket.port")
	portNum := 3030
	if v, ok := numberOf(port); ok {
		portNum = int(v)
	}

	return ClientIdentity{
		Name:          store.GetString("client.name", ""),
		Subscriptions: store.GetStringSlice("client.subscriptions"),
		Signature:     store.GetString("client.signature", ""),
		SafeMode:      store.GetBool("client.safe_mode"),
		Redact:        store.GetStringSlice("client.redact"),
		SocketBind:    bind,
		SocketPort:    portNum,
	}
}
