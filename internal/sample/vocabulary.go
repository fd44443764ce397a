package sample

var firstNames = []string{
	"Lionel", "Cristiano", "Kevin", "Virgil", "Mohamed", "Sadio", "Robert", "Kylian",
	"Neymar", "Harry", "Luka", "Sergio", "Jan", "Marc", "Joshua", "Bruno",
	"Ann", "Anna", "Carlos", "Diego", "Erling", "Frenkie", "Gianluigi", "Heung",
}

var lastNames = []string{
	"Silva", "Santos", "Müller", "Fernandes", "Kimmich", "Oblak", "Modrić", "Ramos",
	"De Bruyne", "Van Dijk", "Salah", "Mané", "Lewandowski", "Mbappé", "Kane", "Haaland",
	"Pereira", "Costa", "Rossi", "Martínez", "Kovač", "Son", "Ter Stegen", "Jong",
}

var positions = []string{"GK", "CB", "LB", "RB", "CDM", "CM", "CAM", "LM", "RM", "LW", "RW", "CF", "ST"}

var nations = []string{
	"Argentina", "Portugal", "Belgium", "Netherlands", "Egypt", "Senegal", "Poland",
	"France", "Brazil", "England", "Croatia", "Spain", "Germany", "Slovenia", "Korea Republic",
}

var clubs = []struct{ club, league string }{
	{"Paris Saint-Germain", "French Ligue 1"},
	{"Olympique Lyonnais", "French Ligue 1"},
	{"Manchester City", "English Premier League"},
	{"Liverpool", "English Premier League"},
	{"Tottenham Hotspur", "English Premier League"},
	{"FC Bayern München", "German 1. Bundesliga"},
	{"Borussia Dortmund", "German 1. Bundesliga"},
	{"Real Madrid CF", "Spain Primera Division"},
	{"FC Barcelona", "Spain Primera Division"},
	{"Atlético de Madrid", "Spain Primera Division"},
	{"Juventus", "Italian Serie A"},
	{"Inter", "Italian Serie A"},
	{"SL Benfica", "Portuguese Liga ZON SAGRES"},
	{"Ajax", "Holland Eredivisie"},
}

var tags = []string{
	"Dribbler", "Playmaker", "Speedster", "Engine", "Distance Shooter",
	"Crosser", "FK Specialist", "Acrobat", "Clinical Finisher", "Complete Forward",
	"Poacher", "Aerial Threat", "Tackling", "Tactician", "Strength",
	"Brazil", "Argentina", "Leader",
}
