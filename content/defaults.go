package content

const unsplash = "https://images.unsplash.com/photo-"

func unsplashURL(id string) string {
	return unsplash + id + "?auto=format&fit=crop&q=80"
}

// Default returns the built-in AWANA content for the named theme. An unknown
// or empty theme name yields the classic layout.
func Default(theme string) *Content {
	if _, ok := LookupTheme(theme); !ok {
		theme = ThemeClassic
	}
	c := &Content{
		Artist:    "AWANA",
		Tagline:   "New Delhi Based",
		Role:      "DJ / Producer",
		Theme:     theme,
		Language:  "en",
		HeroImage: "/assets/hero.jpeg",
		BioImage:  "/assets/bio.jpeg",
		Gallery: []string{
			"/assets/gallery-01.jpeg",
			"/assets/gallery-02.jpeg",
			"/assets/gallery-03.jpeg",
			"/assets/gallery-04.jpeg",
			"/assets/gallery-05.jpeg",
			"/assets/gallery-06.jpeg",
			"/assets/gallery-07.jpeg",
			"/assets/gallery-08.jpeg",
		},
		Headline: "Seamless blends of **Melodic Techno** & House.",
		Bio: []string{
			"Eshan Awana, known as **AWANA**, is a Delhi-based DJ and producer known for his hypnotic rhythms, deep basslines, and masterful crowd control. AWANA crafts unforgettable sets that keep dance floors moving all night.",
			"His performances are immersive journeys, driven by passion and precision. Off the decks, AWANA is approachable and professional, committed to creating lasting memories for every audience.",
			"He has played at top venues across Delhi NCR and shared stages with respected international names.",
		},
		Genres: []string{"Melodic Techno", "House Music", "Progressive"},
		Sound:  "Electrifying, melodic, seamless transitions, heavy bass lines, hypnotic textures and soulful journey.",
		Venues: []string{
			"Thanks & Beyond", "Dirty Good", "Habibi", "Buen", "Chica",
			"Playboy Club", "Danza Jardin", "Selah", "Norman, JW Marriott",
			"Brown Cortile", "Shishi", "Blaq", "Slique", "Yalla", "Loca", "The Coach",
		},
		SharedStage: []Performance{
			{Artist: "Fred Lenix", Venue: "Habibi, Delhi"},
			{Artist: "Zafrir", Venue: "Slique, Delhi"},
			{Artist: "Sistek", Venue: "Chica, Delhi"},
		},
		Email: "info@awanamusic.com",
		Socials: Socials{
			Instagram:       "https://www.instagram.com/awanamusicc/",
			InstagramHandle: "@awanamusicc",
			Spotify:         "https://open.spotify.com/artist/6BhAozySxYP3OGRFCcRQmu",
			YouTube:         "https://www.youtube.com/@AWANAMUSICC",
		},
		Fallbacks: Fallbacks{
			Hero: unsplashURL("1571266028243-371695039989"),
			Bio:  unsplashURL("1598387993441-a364f854c3e1"),
			Gallery: []string{
				unsplashURL("1574169208507-843761948716"),
				unsplashURL("1598387993441-a364f854c3e1"),
				unsplashURL("1470225620780-dba8ba36b745"),
				unsplashURL("1514525253440-b393452e8770"),
			},
		},
		Copyright: "AWANA Music. All Rights Reserved.",
	}
	if theme == ThemeNoir {
		c.SharedStage = append(c.SharedStage,
			Performance{Artist: "Vomee & Ankytrixx", Venue: "Playboy, Delhi"},
			Performance{Artist: "Techpanda & Kenzani", Venue: "Selah"},
		)
		c.Copyright = "AWANA Music. New Delhi."
	}
	return c
}
