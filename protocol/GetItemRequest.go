package protocol

import "net/url"

// GetItemRequest holds the expansion options for retrieving a single item. Every flag
// defaults to off, which asks the server for the plain row.
type GetItemRequest struct {
	// ExpandDropdowns replaces dropdown ids with their names in the response.
	ExpandDropdowns bool
	// GetSha1 returns a sha1 signature of the item instead of the fields.
	GetSha1 bool
	// WithDevices retrieves associated components. Only meaningful for the asset
	// itemtypes (Computer, NetworkEquipment, Peripheral, Phone, Printer).
	WithDevices bool
	// WithDisks retrieves associated file systems (Computer only).
	WithDisks bool
	// WithSoftwares retrieves associated software installations (Computer only).
	WithSoftwares bool
	// WithConnections retrieves direct connections (Computer only).
	WithConnections bool
	// WithNetworkPorts retrieves network connections and advanced network info.
	WithNetworkPorts bool
	// WithInfocoms retrieves financial and administrative information.
	WithInfocoms bool
	// WithContracts retrieves associated contracts.
	WithContracts bool
	// WithDocuments retrieves associated external documents.
	WithDocuments bool
	// WithTickets retrieves associated ITIL tickets.
	WithTickets bool
	// WithProblems retrieves associated ITIL problems.
	WithProblems bool
	// WithChanges retrieves associated ITIL changes.
	WithChanges bool
	// WithNotes retrieves notes.
	WithNotes bool
	// WithLogs retrieves the item history.
	WithLogs bool
	// AddKeyNames lists id fields whose friendly names should be added to the response.
	AddKeyNames []string
}

// EncodeParams writes the enabled options into v using the API's parameter names.
func (g GetItemRequest) EncodeParams(v url.Values) {
	flags := []struct {
		name string
		set  bool
	}{
		{"expand_dropdowns", g.ExpandDropdowns},
		{"get_sha1", g.GetSha1},
		{"with_devices", g.WithDevices},
		{"with_disks", g.WithDisks},
		{"with_softwares", g.WithSoftwares},
		{"with_connections", g.WithConnections},
		{"with_networkports", g.WithNetworkPorts},
		{"with_infocoms", g.WithInfocoms},
		{"with_contracts", g.WithContracts},
		{"with_documents", g.WithDocuments},
		{"with_tickets", g.WithTickets},
		{"with_problems", g.WithProblems},
		{"with_changes", g.WithChanges},
		{"with_notes", g.WithNotes},
		{"with_logs", g.WithLogs},
	}
	for _, f := range flags {
		if f.set {
			v.Set(f.name, "true")
		}
	}
	for _, name := range g.AddKeyNames {
		v.Add("add_keys_names[]", name)
	}
}
