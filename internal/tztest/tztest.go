// Package tztest provides zone fixtures for tests.
package tztest

import (
	"testing"

	"github.com/ngrash/go-tzfmt/tzif"
	"github.com/ngrash/go-tzfmt/zone"
)

// ParisID is the ID of the Paris fixture.
const ParisID = "Europe/Paris"

// ParisData returns TZif data for Central European Time with the 2008
// transitions listed explicitly and later years covered by the footer.
func ParisData(t testing.TB) tzif.Data {
	t.Helper()
	types := []tzif.LocalTimeType{
		{Offset: 3600, Designation: "CET"},
		{Offset: 7200, DST: true, Designation: "CEST"},
	}
	transitions := []tzif.Transition{
		{At: 1206838800, Type: 1}, // 2008-03-30T01:00Z
		{At: 1224982800, Type: 0}, // 2008-10-26T01:00Z
	}
	data, err := tzif.Build(types, transitions, "CET-1CEST,M3.5.0,M10.5.0/3")
	if err != nil {
		t.Fatalf("build Paris data: %v", err)
	}
	return data
}

// Registry returns a registry that holds only the Paris fixture, so tests
// do not depend on the host's zoneinfo files.
func Registry(t testing.TB) *zone.Registry {
	t.Helper()
	reg := zone.NewRegistry()
	if err := reg.Register(ParisID, ParisData(t)); err != nil {
		t.Fatalf("register %s: %v", ParisID, err)
	}
	return reg
}

// Paris returns the Paris zone of a fresh fixture registry.
func Paris(t testing.TB) *zone.Region {
	t.Helper()
	z, err := Registry(t).Zone(ParisID)
	if err != nil {
		t.Fatalf("zone %s: %v", ParisID, err)
	}
	return z.(*zone.Region)
}
