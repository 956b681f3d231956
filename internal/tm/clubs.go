package tm

import (
	"context"

	"github.com/footdata/transfermarkt-api/internal/extract"
)

// SearchClubs runs a club quick-search. The result columns come from
// positional list selectors; the permalink list sets the canonical row
// count and shorter columns are padded to it.
func (s *Scraper) SearchClubs(ctx context.Context, query string, page int) (*ClubSearchResponse, error) {
	if page < 1 {
		page = 1
	}
	doc, err := s.fetch(ctx, searchURL("Verein", query, page))
	if err != nil {
		return nil, err
	}

	urls := doc.List(clubSearchURLs, true)
	n := len(urls)
	names := extract.Align(doc.List(clubSearchNames, true), n, "")
	countries := extract.Align(doc.List(clubSearchCountries, true), n, "")
	squads := extract.Align(doc.List(clubSearchSquads, true), n, "")
	values := extract.Align(doc.List(clubSearchMarketValues, true), n, "")

	results := make([]ClubSearchResult, 0, n)
	for i, u := range urls {
		results = append(results, ClubSearchResult{
			ID:          idFromURL(u),
			Name:        names[i],
			Country:     countries[i],
			Squad:       squads[i],
			MarketValue: values[i],
		})
	}

	return &ClubSearchResponse{
		Query:          query,
		PageNumber:     page,
		LastPageNumber: doc.LastPageNumber(clubSearchBase),
		Results:        results,
	}, nil
}

// ClubProfile fetches a club's home page and reads its profile fields.
func (s *Scraper) ClubProfile(ctx context.Context, clubID string) (*ClubProfile, error) {
	doc, err := s.fetch(ctx, clubProfileURLFor(clubID))
	if err != nil {
		return nil, err
	}
	if err := requireSelector(doc, clubProfileName, "club"); err != nil {
		return nil, err
	}

	one := extract.TextOptions{Pos: 1}
	return &ClubProfile{
		ID:                 clubID,
		URL:                doc.Text(clubProfileURL, one),
		Name:               doc.Text(clubProfileName, one),
		OfficialName:       doc.Text(clubProfileNameOfficial, one),
		Image:              doc.Text(clubProfileImage, one),
		AddressLine1:       doc.Text(clubProfileAddressLine1, one),
		AddressLine2:       doc.Text(clubProfileAddressLine2, one),
		AddressLine3:       doc.Text(clubProfileAddressLine3, one),
		Tel:                doc.Text(clubProfileTel, one),
		Website:            doc.Text(clubProfileWebsite, one),
		FoundedOn:          doc.Text(clubProfileFoundedOn, one),
		Members:            doc.Text(clubProfileMembers, one),
		StadiumName:        doc.Text(clubProfileStadiumName, one),
		StadiumSeats:       doc.Text(clubProfileStadiumSeats, one),
		TransferRecord:     doc.Text(clubProfileTransferRec, one),
		MarketValue:        doc.Text(clubProfileMarketValue, extract.TextOptions{IndexTo: 2, JoinWith: ""}),
		SquadSize:          doc.Text(clubProfileSquadSize, one),
		SquadAverageAge:    doc.Text(clubProfileSquadAvgAge, one),
		SquadForeigners:    doc.Text(clubProfileForeigners, one),
		SquadNationalCount: doc.Text(clubProfileNatPlayers, one),
		LeagueID:           idFromURL(doc.Text(clubProfileLeagueID, one)),
		LeagueName:         doc.Text(clubProfileLeagueName, one),
		LeagueCountryName:  doc.Text(clubProfileCountryName, one),
	}, nil
}
