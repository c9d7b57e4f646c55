package corpus

// fallbackSet is the built-in question set. It guarantees a non-empty corpus
// even when every external source fails to load, and it is the substitute
// result when a topic filter matches nothing.
var fallbackSet = []QuestionRecord{
	{
		ID:         "1",
		Topic:      "Anatomy and Physiology",
		Subject:    "Fundamentals",
		Type:       TypeMCQ,
		Difficulty: DifficultyMedium,
		Question:   "What is the primary function of the mitochondria?",
		Options: map[string]string{
			"A": "Protein synthesis",
			"B": "Energy production (ATP synthesis)",
			"C": "DNA replication",
			"D": "Waste storage",
		},
		CorrectAnswer: "B",
		Explanation:   "Mitochondria are known as the powerhouse of the cell. Their primary function is to produce ATP through cellular respiration.",
	},
	{
		ID:         "2",
		Topic:      "Nursing Fundamentals",
		Subject:    "Fundamentals",
		Type:       TypeMCQ,
		Difficulty: DifficultyMedium,
		Question:   "Which of the following is the correct order of steps in the nursing process?",
		Options: map[string]string{
			"A": "Planning, Assessment, Diagnosis, Implementation, Evaluation",
			"B": "Assessment, Diagnosis, Planning, Implementation, Evaluation",
			"C": "Diagnosis, Assessment, Planning, Implementation, Evaluation",
			"D": "Implementation, Assessment, Diagnosis, Planning, Evaluation",
		},
		CorrectAnswer: "B",
		Explanation:   "The nursing process follows: Assessment, Diagnosis, Planning, Implementation, Evaluation.",
	},
	{
		ID:         "3",
		Topic:      "Medical-Surgical Nursing",
		Subject:    "Clinical",
		Type:       TypeMCQ,
		Difficulty: DifficultyMedium,
		Question:   "What is the normal range for adult body temperature in Celsius?",
		Options: map[string]string{
			"A": "35.5 - 36.5°C",
			"B": "36.5 - 37.5°C",
			"C": "37.5 - 38.5°C",
			"D": "38.5 - 39.5°C",
		},
		CorrectAnswer: "B",
		Explanation:   "Normal body temperature is 36.5°C to 37.5°C.",
	},
	{
		ID:         "4",
		Topic:      "Community Health Nursing",
		Subject:    "Community",
		Type:       TypeMCQ,
		Difficulty: DifficultyMedium,
		Question:   "Which vaccine is administered at birth to prevent tuberculosis?",
		Options: map[string]string{
			"A": "OPV",
			"B": "BCG",
			"C": "Pentavalent",
			"D": "Rotavirus",
		},
		CorrectAnswer: "B",
		Explanation:   "BCG vaccine is administered at birth to provide immunity against tuberculosis.",
	},
	{
		ID:         "5",
		Topic:      "Mental Health Nursing",
		Subject:    "Clinical",
		Type:       TypeMCQ,
		Difficulty: DifficultyMedium,
		Question:   "What is the primary goal of therapeutic communication in nursing?",
		Options: map[string]string{
			"A": "To control the patient's behavior",
			"B": "To establish trust and understanding with the patient",
			"C": "To diagnose mental illness",
			"D": "To prescribe medications",
		},
		CorrectAnswer: "B",
		Explanation:   "Therapeutic communication aims to establish a helping relationship and promote trust.",
	},
	{
		ID:         "6",
		Topic:      "Reproductive Health",
		Subject:    "Maternal-Child",
		Type:       TypeMCQ,
		Difficulty: DifficultyMedium,
		Question:   "What is the normal duration of pregnancy from conception?",
		Options: map[string]string{
			"A": "38 weeks",
			"B": "40 weeks",
			"C": "42 weeks",
			"D": "36 weeks",
		},
		CorrectAnswer: "B",
		Explanation:   "A normal pregnancy lasts approximately 40 weeks (280 days) from LMP.",
	},
	{
		ID:         "7",
		Topic:      "Pediatric Nursing",
		Subject:    "Clinical",
		Type:       TypeMCQ,
		Difficulty: DifficultyMedium,
		Question:   "What is the normal pulse rate range for a school-age child (6-12 years)?",
		Options: map[string]string{
			"A": "70-110 beats per minute",
			"B": "80-120 beats per minute",
			"C": "100-160 beats per minute",
			"D": "60-100 beats per minute",
		},
		CorrectAnswer: "A",
		Explanation:   "Normal pulse rate for school-age children is 70-110 beats per minute.",
	},
	{
		ID:         "8",
		Topic:      "Pharmacology",
		Subject:    "Fundamentals",
		Type:       TypeMCQ,
		Difficulty: DifficultyMedium,
		Question:   "Which of the following is NOT a principle of nursing ethics?",
		Options: map[string]string{
			"A": "Autonomy",
			"B": "Beneficence",
			"C": "Maleficence",
			"D": "Justice",
		},
		CorrectAnswer: "C",
		Explanation:   "Maleficence is not a nursing principle; the principles are Autonomy, Beneficence, Non-maleficence, and Justice.",
	},
	{
		ID:         "9",
		Topic:      "Health Economics",
		Subject:    "Advanced",
		Type:       TypeMCQ,
		Difficulty: DifficultyMedium,
		Question:   "What is the primary goal of health promotion?",
		Options: map[string]string{
			"A": "To treat disease",
			"B": "To increase longevity",
			"C": "To maintain and improve health status",
			"D": "To reduce healthcare costs",
		},
		CorrectAnswer: "C",
		Explanation:   "Health promotion aims to maintain and improve the health status of individuals and communities.",
	},
	{
		ID:         "10",
		Topic:      "Research Methodology",
		Subject:    "Advanced",
		Type:       TypeMCQ,
		Difficulty: DifficultyMedium,
		Question:   "What type of research design allows the researcher to manipulate the independent variable?",
		Options: map[string]string{
			"A": "Descriptive research",
			"B": "Correlational research",
			"C": "Experimental research",
			"D": "Qualitative research",
		},
		CorrectAnswer: "C",
		Explanation:   "Experimental research allows researchers to manipulate variables and determine cause-and-effect relationships.",
	},
}
