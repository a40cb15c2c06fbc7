package memory

import (
	"github.com/robharvey123/cricket-platform/internal/domain/club"
	"github.com/robharvey123/cricket-platform/internal/domain/roster"
)

const ClubIDBrookweald = "brookweald-cc"

// SeedClubs backs local development and the bootstrap seed for a fresh
// database. Production clubs are provisioned through migrations.
func SeedClubs() []club.Club {
	return []club.Club{
		{
			ID:             ClubIDBrookweald,
			Name:           "Brookweald CC",
			AltNames:       []string{"Brookweald", "Brookweald Cricket Club"},
			ActiveSeasonID: "2026",
		},
	}
}

func SeedPlayers() []roster.Player {
	return []roster.Player{
		{ID: "brookweald-rharvey", ClubID: ClubIDBrookweald, FirstName: "Rob", LastName: "Harvey"},
		{ID: "brookweald-jsmith", ClubID: ClubIDBrookweald, FirstName: "John", LastName: "Smith"},
		{ID: "brookweald-asmith", ClubID: ClubIDBrookweald, FirstName: "Alan", LastName: "Smith"},
		{ID: "brookweald-rpatel", ClubID: ClubIDBrookweald, FirstName: "Ravi", LastName: "Patel"},
		{ID: "brookweald-sobrien", ClubID: ClubIDBrookweald, FirstName: "Sean", LastName: "O'Brien"},
		{ID: "brookweald-dclarke", ClubID: ClubIDBrookweald, FirstName: "Dan", LastName: "Clarke"},
	}
}
