package tm

// XPath selectors for transfermarkt.com pages. The site reworked its
// markup in 2024; these target the current structure. Relative
// selectors (leading ".") run against a result row, absolute ones
// against the whole page.

// Player search results.
const (
	playerSearchBase    = "//div[@id='yw0']"
	playerSearchFound   = playerSearchBase + "//text()"
	playerSearchResults = playerSearchBase + "//table[@class='items']//tbody//tr[@class='odd' or @class='even']"

	playerSearchID            = ".//td//table[@class='inline-table']//td[@class='hauptlink']//a//@href"
	playerSearchName          = ".//td//table[@class='inline-table']//td[@class='hauptlink']//a//@title"
	playerSearchPosition      = ".//td[@class='zentriert'][1]//text()"
	playerSearchClubName      = ".//td[@class='zentriert']//img[@class='tiny_wappen']//@title"
	playerSearchClubImage     = ".//td[@class='zentriert']//img[@class='tiny_wappen']//@src"
	playerSearchAge           = ".//td[@class='zentriert'][2]//text()"
	playerSearchNationalities = ".//td[@class='zentriert']//img[@class='flaggenrahmen']//@title"
	playerSearchMarketValue   = ".//td[@class='rechts hauptlink']//text()"
)

// Club search results. These are list-shaped: each selector yields one
// value per row, aligned by position.
const (
	clubSearchBase    = "//div[@id='yw1']"
	clubSearchResults = clubSearchBase + "//table[@class='items']//tbody//tr[@class='odd' or @class='even']"

	clubSearchNames        = clubSearchResults + "//td//table[@class='inline-table']//td[@class='hauptlink']//a//@title"
	clubSearchURLs         = clubSearchResults + "//td//table[@class='inline-table']//td[@class='hauptlink']//a//@href"
	clubSearchCountries    = clubSearchResults + "//td[@class='zentriert']//img[@class='flaggenrahmen']//@title"
	clubSearchSquads       = clubSearchResults + "//td[@class='zentriert']//a//text()"
	clubSearchMarketValues = clubSearchResults + "//td[@class='rechts']//text()"
)

// Club profile page.
const (
	clubProfileURL          = "//link[@rel='canonical']//@href"
	clubProfileName         = "//div[@class='data-header__headline-container']//h1//text()"
	clubProfileNameOfficial = "//th[text()='Official club name:']//following::td[1]//text()"
	clubProfileImage        = "//div[@class='data-header__box--big']//img//@src"
	clubProfileFoundedOn    = "//th[text()='Founded:']//following::td[1]//text()"
	clubProfileMembers      = "//th[text()='Members:']//following::td[1]//text()"
	clubProfileAddressLine1 = "//th[text()='Address:']//following::td[1]//text()"
	clubProfileAddressLine2 = "//th[text()='Address:']//following::td[2]//text()"
	clubProfileAddressLine3 = "//th[text()='Address:']//following::td[3]//text()"
	clubProfileTel          = "//th[text()='Tel:']//following::td[1]//text()"
	clubProfileWebsite      = "//th[text()='Website:']//following::td[1]//text()"
	clubProfileStadiumName  = "//li[contains(text(), 'Stadium:')]//span//a//text()"
	clubProfileStadiumSeats = "//li[contains(text(), 'Stadium:')]//span//span//text()"
	clubProfileTransferRec  = "//li[contains(text(), 'Current transfer record:')]//a//text()"
	clubProfileMarketValue  = "//a[@class='data-header__market-value-wrapper']//text()"
	clubProfileSquadSize    = "//li[contains(text(), 'Squad size:')]//span//text()"
	clubProfileSquadAvgAge  = "//li[contains(text(), 'Average age:')]//span//text()"
	clubProfileForeigners   = "//li[contains(text(), 'Foreigners:')]//span[1]//a//text()"
	clubProfileNatPlayers   = "//li[contains(text(), 'National team players:')]//span//a//text()"
	clubProfileLeagueID     = "//span[@itemprop='affiliation']//a//@href"
	clubProfileLeagueName   = "//span[@itemprop='affiliation']//a//text()"
	clubProfileCountryName  = "//div[@class='data-header__club-info']//img[contains(@class, 'flaggenrahmen')]//@title"
)

// Club squad page (kader). The roster table has two shapes: club pages
// use td.posrela info cells, national-team pages do not.
const (
	rosterBase    = "//div[@id='yw1']"
	rosterResults = rosterBase + "//table[@class='items']//tbody//tr[@class='odd' or @class='even']"

	rosterPastFlag      = rosterBase + "//thead//text()"
	rosterClubName      = "//div[@class='data-header__headline-container']//h1//text()"
	rosterNationalities = rosterResults + "//td[img[@class='flaggenrahmen']]"
	rosterInfoCells     = rosterResults + "//td[@class='posrela']"
	rosterNames         = rosterResults + "//td[@class='posrela']//table[@class='inline-table']//td[@class='hauptlink']//a//text()"
	rosterURLs          = rosterResults + "//td[@class='posrela']//table[@class='inline-table']//td[@class='hauptlink']//a//@href"
	rosterPositions     = rosterResults + "//td[@class='zentriert'][1]//text()"
	rosterDOBAge        = rosterResults + "//td[@class='zentriert'][2]//text()"
	rosterHeights       = rosterResults + "//td[@class='zentriert'][5]//text()"
	rosterFoots         = rosterResults + "//td[@class='zentriert'][6]//text()"
	rosterContracts     = rosterResults + "//td[@class='zentriert'][4]//text()"
	rosterSignedFrom    = rosterResults + "//td[@class='zentriert'][3]"
	rosterJoinedOn      = rosterResults + "//td[@class='zentriert'][4]"
	rosterCurrentClub   = rosterResults + "//td[@class='zentriert'][1]//img//@title"
	rosterMarketValues  = rosterResults + "//td[@class='rechts hauptlink']//text()"

	rosterRowNationalities = ".//img[@class='flaggenrahmen']//@title"
	rosterCellJoined       = ".//span/node()/@title"
	rosterCellSignedFrom   = ".//a//img//@title"
	rosterCellStatuses     = ".//td[@class='hauptlink']//span//@title"
	rosterCellText         = ".//text()"

	// National-team squads list every player row without posrela cells
	// and may repeat a player. Rows are matched back by permalink.
	rosterNationalRows    = "//div[@id='yw1']//tbody//tr[.//td[@class='hauptlink']//a[contains(@href, '/profil/spieler')]]"
	rosterNationalRowURLs = ".//td[@class='hauptlink']//a[contains(@href, '/profil/spieler')]/@href"
	rosterNationalRowName = ".//td[@class='hauptlink']//a[contains(@href, '/profil/spieler')]//text()"
	rosterNationalURLs    = rosterBase + "//td[@class='hauptlink']//a[contains(@href, '/profil/spieler')]/@href"
	rosterNationalNames   = rosterBase + "//td[@class='hauptlink']//a[contains(@href, '/profil/spieler')]//text()"
)

// Club record table on the fixtures page, one row per competition.
const (
	clubRecordTable = "//h2[contains(text(), 'Record')]/following::table[1]"
	clubRecordRows  = ".//tr"
	clubRecordLinks = ".//a[contains(@href, '/wettbewerb/') or contains(@href, '/pokalwettbewerb/')]"
)

// Competition profile, search and clubs.
const (
	competitionProfileName = "//div[@class='data-header__headline-container']//h1//text()" +
		" | //h1[contains(@class, 'content-box-headline')]//text()" +
		" | //div[contains(@class, 'data-header')]//h1//text()" +
		" | //h1[not(contains(text(), 'Participating teams'))]//text()"

	competitionSearchBase    = "//div[@id='yw1']"
	competitionSearchResults = competitionSearchBase + "//table[@class='items']//tbody//tr[@class='odd' or @class='even']"

	competitionSearchURLs        = competitionSearchResults + "//td//a[contains(@href, '/wettbewerb/')]//@href"
	competitionSearchNames       = competitionSearchResults + "//td//a[contains(@href, '/wettbewerb/')]//@title"
	competitionSearchCountries   = competitionSearchResults + "//td[@class='zentriert'][1]//img[@class='flaggenrahmen']//@title"
	competitionSearchClubs       = competitionSearchResults + "//td[@class='zentriert'][2]//text()"
	competitionSearchPlayers     = competitionSearchResults + "//td[@class='rechts']//text()"
	competitionSearchTotalValues = competitionSearchResults + "//td[@class='zentriert'][3]//text()"
	competitionSearchMeanValues  = competitionSearchResults + "//td[@class='zentriert'][4]//text()"
	competitionSearchContinents  = competitionSearchResults + "//td[@class='zentriert'][5]//text()"

	competitionClubsURLs = "//td[@class='hauptlink no-border-links']//a[1]//@href" +
		" | //td[contains(@class, 'hauptlink')]//a[contains(@href, '/nationalmannschaft/')]//@href"
	competitionClubsNames = "//td[@class='hauptlink no-border-links']//a//text()" +
		" | //td[contains(@class, 'hauptlink')]//a[contains(@href, '/nationalmannschaft/')]//text()"

	// Tournament participant pages list qualified teams in the first
	// table after the "starting into tournament" heading; later tables
	// hold teams that did not qualify.
	participantRows = "//h2[contains(text(), 'Clubs starting into tournament')]/following::table[1]" +
		"//tr[.//a[contains(@href, '/verein/') or contains(@href, '/nationalmannschaft/')]]"
	participantURLs = participantRows +
		"//td[@class='hauptlink no-border-links']//a[1]//@href | " + participantRows +
		"//td[contains(@class, 'hauptlink')]//a[contains(@href, '/nationalmannschaft/') or contains(@href, '/verein/')]//@href"
	participantNames = participantRows +
		"//td[@class='hauptlink no-border-links']//a//text() | " + participantRows +
		"//td[contains(@class, 'hauptlink')]//a[contains(@href, '/nationalmannschaft/') or contains(@href, '/verein/')]//text()"

	competitionSeasonCell = "//table[contains(., 'Filter by season:')]" +
		"//td[contains(., 'Filter by season:')]/following-sibling::td[1]//text()"
)
