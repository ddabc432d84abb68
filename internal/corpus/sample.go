package corpus

import "github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir"

// SampleDocuments returns a small built-in English news batch used when the
// configured source yields nothing, so the engine always starts with a
// searchable index.
func SampleDocuments() []clir.Document {
	return []clir.Document{
		{
			Title:         "Bangladesh Economy Shows Strong Growth",
			Body:          "The Bangladesh economy continues to grow at a robust pace, driven by strong export performance and remittance inflows. The GDP growth rate reached 7.2% this year, outpacing many regional competitors. Key sectors like textiles, pharmaceuticals, and IT services have contributed significantly to this expansion.",
			URL:           "https://www.thedailystar.net/business/economy/news/bangladesh-economy-growth-2024",
			Date:          "2024-12-15",
			Language:      "en",
			NamedEntities: []string{"Bangladesh", "GDP", "IT"},
		},
		{
			Title:         "Dhaka Traffic Management System Upgraded",
			Body:          "Dhaka city authorities have implemented a new smart traffic management system to reduce congestion in the capital. The system uses AI-powered cameras and sensors to monitor traffic flow in real-time. Initial results show a 15% reduction in average commute times during peak hours.",
			URL:           "https://www.thedailystar.net/city/news/dhaka-traffic-system-2024",
			Date:          "2024-12-14",
			Language:      "en",
			NamedEntities: []string{"Dhaka", "AI"},
		},
		{
			Title:         "Educational Reform Initiatives Launched",
			Body:          "The government has launched comprehensive educational reform initiatives focusing on digital learning and skills development for students across Bangladesh. The program includes teacher training, infrastructure upgrades, and curriculum modernization to prepare students for the digital economy.",
			URL:           "https://www.thedailystar.net/education/news/education-reform-2024",
			Date:          "2024-12-13",
			Language:      "en",
			NamedEntities: []string{"Bangladesh", "digital learning"},
		},
		{
			Title:         "Renewable Energy Projects Gain Momentum",
			Body:          "Bangladesh is accelerating its transition to renewable energy with several new solar and wind projects announced this quarter. The government aims to generate 40% of electricity from renewable sources by 2030. International partnerships are providing both funding and technical expertise.",
			URL:           "https://www.thedailystar.net/environment/news/renewable-energy-bangladesh-2024",
			Date:          "2024-12-12",
			Language:      "en",
			NamedEntities: []string{"Bangladesh", "solar", "wind"},
		},
		{
			Title:         "Healthcare Infrastructure Expansion Announced",
			Body:          "Major healthcare infrastructure expansion plans were unveiled today, including 50 new hospitals and 200 community health centers across rural areas. The initiative aims to improve healthcare access for underserved populations and reduce the urban-rural healthcare gap.",
			URL:           "https://www.thedailystar.net/health/news/healthcare-expansion-2024",
			Date:          "2024-12-11",
			Language:      "en",
			NamedEntities: []string{"rural areas"},
		},
	}
}
