package teams

// Alias tables map lower-cased team spellings as they appear in bet records
// (abbreviations, city names, nicknames) to the canonical lower-cased name
// used for cache keys and fixture matching. Canonical values match the
// provider's full team names case-folded.

var nbaTeams = map[string]string{
	"hawks":         "atlanta hawks",
	"atlanta":       "atlanta hawks",
	"celtics":       "boston celtics",
	"boston":        "boston celtics",
	"nets":          "brooklyn nets",
	"brooklyn":      "brooklyn nets",
	"hornets":       "charlotte hornets",
	"charlotte":     "charlotte hornets",
	"bulls":         "chicago bulls",
	"chicago":       "chicago bulls",
	"cavaliers":     "cleveland cavaliers",
	"cavs":          "cleveland cavaliers",
	"cleveland":     "cleveland cavaliers",
	"mavericks":     "dallas mavericks",
	"mavs":          "dallas mavericks",
	"dallas":        "dallas mavericks",
	"nuggets":       "denver nuggets",
	"denver":        "denver nuggets",
	"pistons":       "detroit pistons",
	"detroit":       "detroit pistons",
	"warriors":      "golden state warriors",
	"golden state":  "golden state warriors",
	"gsw":           "golden state warriors",
	"rockets":       "houston rockets",
	"houston":       "houston rockets",
	"pacers":        "indiana pacers",
	"indiana":       "indiana pacers",
	"clippers":      "los angeles clippers",
	"la clippers":   "los angeles clippers",
	"lakers":        "los angeles lakers",
	"la lakers":     "los angeles lakers",
	"grizzlies":     "memphis grizzlies",
	"memphis":       "memphis grizzlies",
	"heat":          "miami heat",
	"miami":         "miami heat",
	"bucks":         "milwaukee bucks",
	"milwaukee":     "milwaukee bucks",
	"timberwolves":  "minnesota timberwolves",
	"wolves":        "minnesota timberwolves",
	"minnesota":     "minnesota timberwolves",
	"pelicans":      "new orleans pelicans",
	"new orleans":   "new orleans pelicans",
	"knicks":        "new york knicks",
	"ny knicks":     "new york knicks",
	"thunder":       "oklahoma city thunder",
	"okc":           "oklahoma city thunder",
	"oklahoma city": "oklahoma city thunder",
	"magic":         "orlando magic",
	"orlando":       "orlando magic",
	"76ers":         "philadelphia 76ers",
	"sixers":        "philadelphia 76ers",
	"philadelphia":  "philadelphia 76ers",
	"suns":          "phoenix suns",
	"phoenix":       "phoenix suns",
	"trail blazers": "portland trail blazers",
	"blazers":       "portland trail blazers",
	"portland":      "portland trail blazers",
	"kings":         "sacramento kings",
	"sacramento":    "sacramento kings",
	"spurs":         "san antonio spurs",
	"san antonio":   "san antonio spurs",
	"raptors":       "toronto raptors",
	"toronto":       "toronto raptors",
	"jazz":          "utah jazz",
	"utah":          "utah jazz",
	"wizards":       "washington wizards",
	"washington":    "washington wizards",
}

var nflTeams = map[string]string{
	"cardinals":    "arizona cardinals",
	"falcons":      "atlanta falcons",
	"ravens":       "baltimore ravens",
	"bills":        "buffalo bills",
	"panthers":     "carolina panthers",
	"bears":        "chicago bears",
	"bengals":      "cincinnati bengals",
	"browns":       "cleveland browns",
	"cowboys":      "dallas cowboys",
	"broncos":      "denver broncos",
	"lions":        "detroit lions",
	"packers":      "green bay packers",
	"green bay":    "green bay packers",
	"texans":       "houston texans",
	"colts":        "indianapolis colts",
	"jaguars":      "jacksonville jaguars",
	"chiefs":       "kansas city chiefs",
	"kansas city":  "kansas city chiefs",
	"raiders":      "las vegas raiders",
	"chargers":     "los angeles chargers",
	"rams":         "los angeles rams",
	"dolphins":     "miami dolphins",
	"vikings":      "minnesota vikings",
	"patriots":     "new england patriots",
	"new england":  "new england patriots",
	"saints":       "new orleans saints",
	"giants":       "new york giants",
	"jets":         "new york jets",
	"eagles":       "philadelphia eagles",
	"steelers":     "pittsburgh steelers",
	"49ers":        "san francisco 49ers",
	"niners":       "san francisco 49ers",
	"seahawks":     "seattle seahawks",
	"buccaneers":   "tampa bay buccaneers",
	"bucs":         "tampa bay buccaneers",
	"titans":       "tennessee titans",
	"commanders":   "washington commanders",
}

var mlbTeams = map[string]string{
	"diamondbacks": "arizona diamondbacks",
	"braves":       "atlanta braves",
	"orioles":      "baltimore orioles",
	"red sox":      "boston red sox",
	"cubs":         "chicago cubs",
	"white sox":    "chicago white sox",
	"reds":         "cincinnati reds",
	"guardians":    "cleveland guardians",
	"rockies":      "colorado rockies",
	"tigers":       "detroit tigers",
	"astros":       "houston astros",
	"royals":       "kansas city royals",
	"angels":       "los angeles angels",
	"dodgers":      "los angeles dodgers",
	"marlins":      "miami marlins",
	"brewers":      "milwaukee brewers",
	"twins":        "minnesota twins",
	"mets":         "new york mets",
	"yankees":      "new york yankees",
	"athletics":    "oakland athletics",
	"phillies":     "philadelphia phillies",
	"pirates":      "pittsburgh pirates",
	"padres":       "san diego padres",
	"mariners":     "seattle mariners",
	"cardinals":    "st. louis cardinals",
	"rays":         "tampa bay rays",
	"rangers":      "texas rangers",
	"blue jays":    "toronto blue jays",
	"nationals":    "washington nationals",
}

var nhlTeams = map[string]string{
	"ducks":        "anaheim ducks",
	"bruins":       "boston bruins",
	"sabres":       "buffalo sabres",
	"flames":       "calgary flames",
	"hurricanes":   "carolina hurricanes",
	"blackhawks":   "chicago blackhawks",
	"avalanche":    "colorado avalanche",
	"blue jackets": "columbus blue jackets",
	"stars":        "dallas stars",
	"red wings":    "detroit red wings",
	"oilers":       "edmonton oilers",
	"kings":        "los angeles kings",
	"wild":         "minnesota wild",
	"canadiens":    "montreal canadiens",
	"predators":    "nashville predators",
	"devils":       "new jersey devils",
	"islanders":    "new york islanders",
	"rangers":      "new york rangers",
	"senators":     "ottawa senators",
	"flyers":       "philadelphia flyers",
	"penguins":     "pittsburgh penguins",
	"sharks":       "san jose sharks",
	"kraken":       "seattle kraken",
	"blues":        "st. louis blues",
	"lightning":    "tampa bay lightning",
	"maple leafs":  "toronto maple leafs",
	"canucks":      "vancouver canucks",
	"golden knights": "vegas golden knights",
	"capitals":     "washington capitals",
	"jets":         "winnipeg jets",
}

var ncaaBasketballTeams = map[string]string{
	"unc":            "north carolina",
	"tar heels":      "north carolina",
	"duke":           "duke",
	"blue devils":    "duke",
	"uk":             "kentucky",
	"wildcats":       "kentucky",
	"kansas":         "kansas",
	"jayhawks":       "kansas",
	"gonzaga":        "gonzaga",
	"zags":           "gonzaga",
	"uconn":          "connecticut",
	"huskies":        "connecticut",
	"ucla":           "ucla",
	"bruins":         "ucla",
	"msu":            "michigan state",
	"spartans":       "michigan state",
	"nova":           "villanova",
	"villanova":      "villanova",
	"zona":           "arizona",
	"baylor":         "baylor",
	"houston":        "houston",
	"cougars":        "houston",
	"purdue":         "purdue",
	"boilermakers":   "purdue",
	"bama":           "alabama",
	"vols":           "tennessee",
	"hoosiers":       "indiana",
	"tamu":           "texas a&m",
	"aggies":         "texas a&m",
}

var ncaaFootballTeams = map[string]string{
	"bama":         "alabama",
	"crimson tide": "alabama",
	"osu":          "ohio state",
	"buckeyes":     "ohio state",
	"uga":          "georgia",
	"bulldogs":     "georgia",
	"lsu":          "lsu",
	"sooners":      "oklahoma",
	"longhorns":    "texas",
	"wolverines":   "michigan",
	"fighting irish": "notre dame",
	"seminoles":    "florida state",
	"fsu":          "florida state",
	"tigers":       "clemson",
	"ducks":        "oregon",
	"trojans":      "usc",
}

var wnbaTeams = map[string]string{
	"dream":    "atlanta dream",
	"sky":      "chicago sky",
	"sun":      "connecticut sun",
	"wings":    "dallas wings",
	"fever":    "indiana fever",
	"aces":     "las vegas aces",
	"sparks":   "los angeles sparks",
	"lynx":     "minnesota lynx",
	"liberty":  "new york liberty",
	"mercury":  "phoenix mercury",
	"storm":    "seattle storm",
	"mystics":  "washington mystics",
}

var cflTeams = map[string]string{
	"stampeders":   "calgary stampeders",
	"elks":         "edmonton elks",
	"tiger-cats":   "hamilton tiger-cats",
	"alouettes":    "montreal alouettes",
	"redblacks":    "ottawa redblacks",
	"roughriders":  "saskatchewan roughriders",
	"argonauts":    "toronto argonauts",
	"argos":        "toronto argonauts",
	"lions":        "bc lions",
	"blue bombers": "winnipeg blue bombers",
}
