package service

import (
	"frt-offers/domain"
	"frt-offers/repository"
)

// ClassifyPort looks name up in the catalog for role. The returned port
// carries its type tag and clause ids; an unknown name is a client error on
// the matching request field.
func ClassifyPort(cat *repository.Catalog, role domain.PortRole, name string) (domain.Port, error) {
	port, ok := cat.Port(role, name)
	if !ok {
		return domain.Port{}, domain.NewError(domain.KindUnknownPort, portField(role), "%s port %q not found", role, name)
	}
	return port, nil
}

func portField(role domain.PortRole) string {
	if role == domain.PortRoleDischarge {
		return "discharge_port"
	}
	return "load_port"
}
