package dialogue

import "strings"

// Off-domain topics the assistant refuses to engage with. Cheap substring
// filter: high precision, low recall, defers ambiguous messages to extraction.
var offTopicTerms = []string{
	"politik",
	"pemilu",
	"saham",
	"kripto",
	"crypto",
	"forex",
	"judi",
	"togel",
	"coding",
	"pemrograman",
	"skripsi",
	"matematika",
	"resep masakan",
}

// A travel-context term rescues a message that also mentions an off-domain topic.
var travelTerms = []string{
	"wisata",
	"liburan",
	"berlibur",
	"jalan-jalan",
	"trip",
	"travel",
	"tur ",
	"destinasi",
	"itinerary",
	"piknik",
}

const refusalReply = "Maaf, aku cuma bisa bantu merencanakan liburanmu. " +
	"Ceritakan saja mau jalan-jalan ke mana, berapa lama, dan budget-nya berapa!"

// queryAllowed reports whether the message should proceed to extraction.
func queryAllowed(message string) bool {
	folded := strings.ToLower(message)
	offTopic := false
	for _, term := range offTopicTerms {
		if strings.Contains(folded, term) {
			offTopic = true
			break
		}
	}
	if !offTopic {
		return true
	}
	for _, term := range travelTerms {
		if strings.Contains(folded, term) {
			return true
		}
	}
	return false
}
