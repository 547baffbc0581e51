// Package seed loads the reference data (activities, challenges) and can
// generate demo users for development environments.
package seed

import (
	"fmt"
	"log/slog"

	"szlak/internal/middleware"
	"szlak/internal/models"

	"gorm.io/gorm"
)

// Reference populates the activities and challenges tables. Each table is
// seeded only when empty, so calling this on every boot is safe and a
// concurrent second process cannot double-seed a populated database.
func Reference(db *gorm.DB) error {
	if err := seedActivities(db); err != nil {
		return fmt.Errorf("failed to seed activities: %w", err)
	}
	if err := seedChallenges(db); err != nil {
		return fmt.Errorf("failed to seed challenges: %w", err)
	}
	return nil
}

func seedActivities(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Activity{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	activities := referenceActivities()
	if err := db.Create(&activities).Error; err != nil {
		return err
	}
	middleware.Logger.Info("Activity catalogue seeded", slog.Int("count", len(activities)))
	return nil
}

func seedChallenges(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Challenge{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	challenges := []models.Challenge{
		{
			Title:       "Pięć Szczytów",
			Description: "Zdobądź 5 różnych szczytów w ciągu miesiąca",
			TargetCount: 5,
			Period:      "month",
		},
		{
			Title:       "Mistrz Rowerów",
			Description: "Przejedź 100 km rowerem w ciągu miesiąca",
			TargetCount: 100,
			Period:      "month",
		},
		{
			Title:       "Odkrywca Małopolski",
			Description: "Odwiedź 3 różne regiony w ciągu miesiąca",
			TargetCount: 3,
			Period:      "month",
		},
	}

	if err := db.Create(&challenges).Error; err != nil {
		return err
	}
	middleware.Logger.Info("Challenges seeded", slog.Int("count", len(challenges)))
	return nil
}

// referenceActivities is the Małopolska outdoor catalogue.
func referenceActivities() []models.Activity {
	return []models.Activity{
		{
			Name:         "Szlak na Giewont",
			Description:  "Kultowy szczyt Tatr z charakterystycznym krzyżem na szczycie. Wspaniałe widoki na Dolinę Kościeliską i panoramę Tatr. Wymagające podejście przez Kondracką Przełęcz.",
			Difficulty:   models.DifficultyHard,
			Region:       "Podhale",
			ActivityType: models.TypeMountain,
			Location:     "Zakopane, Tatry",
			Duration:     "6-7 godzin",
			Distance:     "10 km",
			Elevation:    "1300 m w górę",
			ImageURL:     "/images/giewont.jpg",
		},
		{
			Name:         "Ścieżka nad Reglami",
			Description:  "Malowniczy szlak rowerowy prowadzący przez urokliwe wioski podhalańskie. Idealna trasa dla rodzin z dziećmi, łagodne wzniesienia i piękne widoki na Tatry.",
			Difficulty:   models.DifficultyEasy,
			Region:       "Podhale",
			ActivityType: models.TypeBike,
			Location:     "Zakopane - Chochołów",
			Duration:     "3-4 godziny",
			Distance:     "35 km",
			Elevation:    "200 m w górę",
			ImageURL:     "/images/regiel.jpg",
		},
		{
			Name:         "Morskie Oko",
			Description:  "Największe i najpiękniejsze jezioro w Tatrach Polskich. Łatwy spacer asfaltem, dostępny dla każdego. Możliwość kontynuacji do Czarnego Stawu pod Rysami.",
			Difficulty:   models.DifficultyEasy,
			Region:       "Podhale",
			ActivityType: models.TypeWalk,
			Location:     "Palenica Białczańska",
			Duration:     "2-3 godziny",
			Distance:     "9 km (tam i z powrotem)",
			Elevation:    "200 m w górę",
			ImageURL:     "/images/morskie-oko.jpg",
		},
		{
			Name:         "Spływ Dunajcem",
			Description:  "Tradycyjny spływ tratwami przez Przełom Dunajca w Pieninach. Malownicze widoki na skały, zamek w Czorsztynie i Trzy Korony. Doświadczeni flisacy opowiadają legendy.",
			Difficulty:   models.DifficultyEasy,
			Region:       "Pieniny",
			ActivityType: models.TypeWater,
			Location:     "Sromowce - Szczawnica",
			Duration:     "2 godziny",
			Distance:     "18 km",
			Elevation:    "N/A",
			ImageURL:     "/images/dunajec.jpg",
		},
		{
			Name:         "Trzy Korony",
			Description:  "Najbardziej znany szczyt Pienin z przepięknymi widokami na Przełom Dunajca. Mozaikowa ścieżka, miejscami strome podejścia, ale nagroda w postaci panoramy jest niesamowita.",
			Difficulty:   models.DifficultyMedium,
			Region:       "Pieniny",
			ActivityType: models.TypeMountain,
			Location:     "Szczawnica",
			Duration:     "4-5 godzin",
			Distance:     "8 km",
			Elevation:    "500 m w górę",
			ImageURL:     "/images/trzy-korony.jpg",
		},
		{
			Name:         "Rowerem po Krakowie",
			Description:  "Miejska trasa rowerowa przez najważniejsze zabytki Krakowa: Rynek Główny, Wawel, Kazimierz, bulwary wiślane. Płaska trasa, idealna na rodzinny wypad.",
			Difficulty:   models.DifficultyEasy,
			Region:       "Kraków",
			ActivityType: models.TypeBike,
			Location:     "Kraków - centrum",
			Duration:     "2-3 godziny",
			Distance:     "20 km",
			Elevation:    "50 m w górę",
			ImageURL:     "/images/krakow-bike.jpg",
		},
		{
			Name:         "Kopiec Kościuszki",
			Description:  "Spacer na najwyższy kopiec w Krakowie. Piękna panorama miasta, fortyfikacje z XIX wieku, muzeum. Przyjemna wycieczka dla całej rodziny.",
			Difficulty:   models.DifficultyEasy,
			Region:       "Kraków",
			ActivityType: models.TypeWalk,
			Location:     "Kraków - Zwierzyniec",
			Duration:     "1-2 godziny",
			Distance:     "3 km",
			Elevation:    "100 m w górę",
			ImageURL:     "/images/kopiec.jpg",
		},
		{
			Name:         "Babia Góra",
			Description:  "Najwyższy szczyt poza Tatrami (1725 m n.p.m.). Wymagający szlak przez Markowe Szczawiny, przepiękne widoki, często powyżej chmur. Dla wprawionych turystów.",
			Difficulty:   models.DifficultyHard,
			Region:       "Beskidy",
			ActivityType: models.TypeMountain,
			Location:     "Zawoja",
			Duration:     "7-8 godzin",
			Distance:     "14 km",
			Elevation:    "1100 m w górę",
			ImageURL:     "/images/babia-gora.jpg",
		},
		{
			Name:         "Jezioro Czorsztyńskie",
			Description:  "Kajaki i SUP na spokojnych wodach zbiornika. Widoki na Pieniny i Gorce, malownicze zatoczki. Możliwość wypożyczenia sprzętu na miejscu.",
			Difficulty:   models.DifficultyEasy,
			Region:       "Pieniny",
			ActivityType: models.TypeWater,
			Location:     "Czorsztyn",
			Duration:     "2-4 godziny",
			Distance:     "dowolna",
			Elevation:    "N/A",
			ImageURL:     "/images/czorsztyn.jpg",
		},
		{
			Name:         "Szlak Orlich Gniazd",
			Description:  "Rowerowy szlak przez Jurę Krakowsko-Częstochowską, zamki: Ojców, Pieskowa Skała, Rabsztyn. Umiarkowanie trudny, ale piękne krajobrazy krasowe.",
			Difficulty:   models.DifficultyMedium,
			Region:       "Jura",
			ActivityType: models.TypeBike,
			Location:     "Ojców - Olsztyn",
			Duration:     "5-6 godzin",
			Distance:     "45 km",
			Elevation:    "600 m w górę",
			ImageURL:     "/images/orle-gniazda.jpg",
		},
	}
}
