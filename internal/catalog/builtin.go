package catalog

// Builtin returns the starter Italian catalog. Content is reference data:
// the progression core never inspects anything beyond ids, exercise order
// and XP rewards.
func Builtin() *Catalog {
	c, err := New(builtinLessons())
	if err != nil {
		// The builtin table is static; a bad entry is a programming error.
		panic(err)
	}
	return c
}

func builtinLessons() []Lesson {
	return []Lesson{
		{
			ID:          "greetings-1",
			Title:       "Greetings",
			Description: "Say hello and goodbye",
			Level:       "A1",
			XPReward:    20,
			Exercises: []Exercise{
				{
					ID:            "greetings-1-1",
					Type:          ExerciseTranslation,
					Question:      "Translate: Hello",
					CorrectAnswer: "Ciao",
					Explanation:   "\"Ciao\" works for both hello and goodbye among friends.",
				},
				{
					ID:            "greetings-1-2",
					Type:          ExerciseMultipleChoice,
					Question:      "How do you say \"Good morning\"?",
					CorrectAnswer: "Buongiorno",
					Options:       []string{"Buonanotte", "Buongiorno", "Buonasera", "Arrivederci"},
					Explanation:   "\"Buongiorno\" is used until the early afternoon.",
				},
				{
					ID:            "greetings-1-3",
					Type:          ExerciseTranslation,
					Question:      "Translate: Goodbye (formal)",
					CorrectAnswer: "Arrivederci",
				},
				{
					ID:            "greetings-1-4",
					Type:          ExerciseMultipleChoice,
					Question:      "\"Buonasera\" means:",
					CorrectAnswer: "Good evening",
					Options:       []string{"Good night", "Good evening", "Good morning", "See you"},
				},
				{
					ID:            "greetings-1-5",
					Type:          ExerciseTranslation,
					Question:      "Translate: Please",
					CorrectAnswer: "Per favore",
					Explanation:   "\"Per piacere\" is an equally common alternative.",
				},
			},
		},
		{
			ID:          "introductions-1",
			Title:       "Introducing Yourself",
			Description: "Name, origin and basic questions",
			Level:       "A1",
			XPReward:    25,
			Exercises: []Exercise{
				{
					ID:            "introductions-1-1",
					Type:          ExerciseTranslation,
					Question:      "Translate: My name is Marco",
					CorrectAnswer: "Mi chiamo Marco",
					Explanation:   "Literally \"I call myself Marco\".",
				},
				{
					ID:            "introductions-1-2",
					Type:          ExerciseMultipleChoice,
					Question:      "\"Di dove sei?\" asks about your:",
					CorrectAnswer: "Origin",
					Options:       []string{"Age", "Origin", "Job", "Name"},
				},
				{
					ID:            "introductions-1-3",
					Type:          ExerciseTranslation,
					Question:      "Translate: Nice to meet you",
					CorrectAnswer: "Piacere",
				},
				{
					ID:            "introductions-1-4",
					Type:          ExerciseMultipleChoice,
					Question:      "How do you ask \"How are you?\" informally?",
					CorrectAnswer: "Come stai?",
					Options:       []string{"Come sta?", "Come stai?", "Che ore sono?", "Quanto costa?"},
					Explanation:   "\"Come sta?\" is the formal variant.",
				},
			},
		},
		{
			ID:          "numbers-1",
			Title:       "Numbers 1–10",
			Description: "Counting from uno to dieci",
			Level:       "A1",
			XPReward:    20,
			Exercises: []Exercise{
				{
					ID:            "numbers-1-1",
					Type:          ExerciseTranslation,
					Question:      "Translate: three",
					CorrectAnswer: "tre",
				},
				{
					ID:            "numbers-1-2",
					Type:          ExerciseMultipleChoice,
					Question:      "\"otto\" is:",
					CorrectAnswer: "8",
					Options:       []string{"4", "6", "8", "10"},
				},
				{
					ID:            "numbers-1-3",
					Type:          ExerciseTranslation,
					Question:      "Translate: seven",
					CorrectAnswer: "sette",
					Explanation:   "Double consonants change meaning: \"sete\" is thirst.",
				},
			},
		},
		{
			ID:          "cafe-1",
			Title:       "At the Café",
			Description: "Ordering food and drinks",
			Level:       "A2",
			XPReward:    30,
			Exercises: []Exercise{
				{
					ID:            "cafe-1-1",
					Type:          ExerciseTranslation,
					Question:      "Translate: A coffee, please",
					CorrectAnswer: "Un caffè, per favore",
					Explanation:   "Ordering \"un caffè\" gets you an espresso.",
				},
				{
					ID:            "cafe-1-2",
					Type:          ExerciseMultipleChoice,
					Question:      "\"Il conto, per favore\" means:",
					CorrectAnswer: "The bill, please",
					Options:       []string{"The menu, please", "The bill, please", "A table, please", "Water, please"},
				},
				{
					ID:            "cafe-1-3",
					Type:          ExerciseMultipleChoice,
					Question:      "What is \"una spremuta\"?",
					CorrectAnswer: "Fresh-squeezed juice",
					Options:       []string{"A pastry", "Sparkling water", "Fresh-squeezed juice", "An ice cream"},
				},
				{
					ID:            "cafe-1-4",
					Type:          ExerciseTranslation,
					Question:      "Translate: I would like a croissant",
					CorrectAnswer: "Vorrei un cornetto",
					Explanation:   "\"Vorrei\" (I would like) is the polite way to order.",
				},
			},
		},
	}
}
