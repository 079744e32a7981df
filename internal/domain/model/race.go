package model

// Race is one grand prix from the season calendar. The engine only needs
// the key and display name; schedule fields are carried for the UI layer.
type Race struct {
	Key       string `json:"key"`
	Round     int    `json:"round"`
	GrandPrix string `json:"grand_prix"`
	DateLocal string `json:"date_local,omitempty"`
	QDate     string `json:"q_date_local,omitempty"`
	QTime     string `json:"qualifying_time_local,omitempty"`
	RaceDate  string `json:"race_date_local,omitempty"`
	RaceTime  string `json:"race_time_local,omitempty"`
	Timezone  string `json:"timezone,omitempty"`
}

// RaceKeys projects the calendar onto its event keys, preserving order.
func RaceKeys(races []Race) []string {
	keys := make([]string, len(races))
	for i, r := range races {
		keys[i] = r.Key
	}
	return keys
}
