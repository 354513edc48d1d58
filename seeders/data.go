package seeders

import "service-desk/pkg/constants"

// Default catalog values offered by the request forms.
var catalogData = map[string][]string{
	"area": {
		"Electrical",
		"Plumbing",
		"HVAC",
		"Structural",
		"Roofing",
		"Gates and doors",
	},
	"defect": {
		"Leak",
		"Short circuit",
		"Corrosion",
		"Cracked surface",
		"Noise or vibration",
		"Not working",
	},
	"request_type": {
		"quote",
		"work order",
		"general service",
		"warranty",
		"non-conformance report",
		"inspection",
	},
}

// Demo technicians, created only when SEED_TECHNICIAN_PASSWORD is set.
var technicianData = []struct {
	Name  string
	Login string
	Role  constants.Role
}{
	{Name: "Carlos Mendez", Login: "cmendez", Role: constants.RoleTechnician},
	{Name: "Ana Ruiz", Login: "aruiz", Role: constants.RoleTechnician},
	{Name: "Jorge Salas", Login: "jsalas", Role: constants.RoleTechnician},
}
