package tm

// Wire types for the extraction services. Every record of a list
// carries the full key set; absent values stay as empty strings so
// positional assembly cannot silently drop a column.

// ClubRef identifies a club inside another record.
type ClubRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PlayerSearchResult is one row of a player search page.
type PlayerSearchResult struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Position      string   `json:"position"`
	Club          ClubRef  `json:"club"`
	Age           string   `json:"age"`
	Nationalities []string `json:"nationalities"`
	MarketValue   string   `json:"marketValue"`
}

// PlayerSearchResponse is the payload of the player search endpoint.
type PlayerSearchResponse struct {
	Query          string               `json:"query"`
	PageNumber     int                  `json:"pageNumber"`
	LastPageNumber int                  `json:"lastPageNumber"`
	Results        []PlayerSearchResult `json:"results"`
}

// ClubSearchResult is one row of a club search page.
type ClubSearchResult struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Country     string `json:"country"`
	Squad       string `json:"squad"`
	MarketValue string `json:"marketValue"`
}

// ClubSearchResponse is the payload of the club search endpoint.
type ClubSearchResponse struct {
	Query          string             `json:"query"`
	PageNumber     int                `json:"pageNumber"`
	LastPageNumber int                `json:"lastPageNumber"`
	Results        []ClubSearchResult `json:"results"`
}

// ClubProfile is the payload of the club profile endpoint.
type ClubProfile struct {
	ID                  string `json:"id"`
	URL                 string `json:"url"`
	Name                string `json:"name"`
	OfficialName        string `json:"officialName"`
	Image               string `json:"image"`
	AddressLine1        string `json:"addressLine1"`
	AddressLine2        string `json:"addressLine2"`
	AddressLine3        string `json:"addressLine3"`
	Tel                 string `json:"tel"`
	Website             string `json:"website"`
	FoundedOn           string `json:"foundedOn"`
	Members             string `json:"members"`
	StadiumName         string `json:"stadiumName"`
	StadiumSeats        string `json:"stadiumSeats"`
	TransferRecord      string `json:"currentTransferRecord"`
	MarketValue         string `json:"currentMarketValue"`
	SquadSize           string `json:"squadSize"`
	SquadAverageAge     string `json:"squadAverageAge"`
	SquadForeigners     string `json:"squadForeigners"`
	SquadNationalCount  string `json:"squadNationalTeamPlayers"`
	LeagueID            string `json:"leagueId"`
	LeagueName          string `json:"leagueName"`
	LeagueCountryName   string `json:"leagueCountryName"`
}

// RosterPlayer is one member of a club squad.
type RosterPlayer struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Position    string   `json:"position"`
	DateOfBirth string   `json:"dateOfBirth"`
	Age         string   `json:"age"`
	Nationality []string `json:"nationality"`
	CurrentClub string   `json:"currentClub"`
	Height      string   `json:"height"`
	Foot        string   `json:"foot"`
	JoinedOn    string   `json:"joinedOn"`
	Joined      string   `json:"joined"`
	SignedFrom  string   `json:"signedFrom"`
	Contract    string   `json:"contract"`
	MarketValue string   `json:"marketValue"`
	Status      string   `json:"status"`
}

// ClubPlayersResponse is the payload of the club squad endpoint.
type ClubPlayersResponse struct {
	ID      string         `json:"id"`
	Players []RosterPlayer `json:"players"`
}

// CompetitionRef is one competition a club takes part in.
type CompetitionRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ClubCompetitionsResponse is the payload of the club competitions
// endpoint.
type ClubCompetitionsResponse struct {
	ID           string           `json:"id"`
	SeasonID     string           `json:"seasonId"`
	Competitions []CompetitionRef `json:"competitions"`
}

// CompetitionSearchResult is one row of a competition search page.
type CompetitionSearchResult struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Country          string `json:"country"`
	Clubs            string `json:"clubs"`
	Players          string `json:"players"`
	TotalMarketValue string `json:"totalMarketValue"`
	MeanMarketValue  string `json:"meanMarketValue"`
	Continent        string `json:"continent"`
}

// CompetitionSearchResponse is the payload of the competition search
// endpoint.
type CompetitionSearchResponse struct {
	Query          string                    `json:"query"`
	PageNumber     int                       `json:"pageNumber"`
	LastPageNumber int                       `json:"lastPageNumber"`
	Results        []CompetitionSearchResult `json:"results"`
}

// CompetitionClubsResponse is the payload of the competition clubs
// endpoint.
type CompetitionClubsResponse struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	SeasonID string    `json:"seasonId"`
	Clubs    []ClubRef `json:"clubs"`
}

// Season is one entry of a competition's season dropdown.
type Season struct {
	SeasonID   string `json:"seasonId"`
	SeasonName string `json:"seasonName"`
	StartYear  int    `json:"startYear"`
	EndYear    int    `json:"endYear"`
}

// CompetitionSeasonsResponse is the payload of the competition seasons
// endpoint.
type CompetitionSeasonsResponse struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Seasons []Season `json:"seasons"`
}
