package service

import "cme-be/pkg/faction"

type IFactionService interface {
	// Factions maps every faction id to its canonical name.
	Factions() map[string]string
}

type factionService struct{}

func NewFactionService() IFactionService {
	return &factionService{}
}

func (s *factionService) Factions() map[string]string {
	all := faction.All()
	res := make(map[string]string, len(all))
	for _, f := range all {
		res[f.ID()] = f.Name()
	}
	return res
}
