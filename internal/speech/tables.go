package speech

// Per-language lookup tables for the normalizer. These are data, not
// logic: adding a language means adding its rows here and to the tables in
// language.go, nothing else.

// monthNames maps native-script month names to their English equivalents.
// English month names pass through the normalizer untouched.
var monthNames = map[Language]map[string]string{
	LangHindi: {
		"जनवरी": "January", "फरवरी": "February", "मार्च": "March",
		"अप्रैल": "April", "मई": "May", "जून": "June",
		"जुलाई": "July", "अगस्त": "August", "सितंबर": "September",
		"अक्टूबर": "October", "नवंबर": "November", "दिसंबर": "December",
	},
	LangKannada: {
		"ಜನವರಿ": "January", "ಫೆಬ್ರವರಿ": "February", "ಮಾರ್ಚ್": "March",
		"ಏಪ್ರಿಲ್": "April", "ಮೇ": "May", "ಜೂನ್": "June",
		"ಜುಲೈ": "July", "ಆಗಸ್ಟ್": "August", "ಸೆಪ್ಟೆಂಬರ್": "September",
		"ಅಕ್ಟೋಬರ್": "October", "ನವೆಂಬರ್": "November", "ಡಿಸೆಂಬರ್": "December",
	},
	LangTamil: {
		"ஜனவரி": "January", "பிப்ரவரி": "February", "மார்ச்": "March",
		"ஏப்ரல்": "April", "மே": "May", "ஜூன்": "June",
		"ஜூலை": "July", "ஆகஸ்ட்": "August", "செப்டம்பர்": "September",
		"அக்டோபர்": "October", "நவம்பர்": "November", "டிசம்பர்": "December",
	},
	LangTelugu: {
		"జనవరి": "January", "ఫిబ్రవరి": "February", "మార్చి": "March",
		"ఏప్రిల్": "April", "మే": "May", "జూన్": "June",
		"జూలై": "July", "ఆగస్టు": "August", "సెప్టెంబర్": "September",
		"అక్టోబర్": "October", "నవంబర్": "November", "డిసెంబర్": "December",
	},
	LangMalayalam: {
		"ജനുവരി": "January", "ഫെബ്രുവരി": "February", "മാർച്ച്": "March",
		"ഏപ്രിൽ": "April", "മേയ്": "May", "ജൂൺ": "June",
		"ജൂലൈ": "July", "ഓഗസ്റ്റ്": "August", "സെപ്റ്റംബർ": "September",
		"ഒക്ടോബർ": "October", "നവംബർ": "November", "ഡിസംബർ": "December",
	},
}

// dayPeriod classifies a time-of-day word for AM/PM rewriting.
type dayPeriod int

const (
	periodMorning dayPeriod = iota
	periodAfternoon
	periodEvening
	periodNight
	periodOClock
)

// timeWords maps native time-of-day words to their day period. The
// o'clock-equivalent words carry no AM/PM information and are dropped.
var timeWords = map[Language]map[string]dayPeriod{
	LangEnglish: {
		"morning": periodMorning, "afternoon": periodAfternoon,
		"evening": periodEvening, "night": periodNight,
		"o'clock": periodOClock, "oclock": periodOClock,
	},
	LangHindi: {
		"सुबह": periodMorning, "दोपहर": periodAfternoon,
		"शाम": periodEvening, "रात": periodNight, "बजे": periodOClock,
	},
	LangKannada: {
		"ಬೆಳಿಗ್ಗೆ": periodMorning, "ಮಧ್ಯಾಹ್ನ": periodAfternoon,
		"ಸಂಜೆ": periodEvening, "ರಾತ್ರಿ": periodNight, "ಗಂಟೆಗೆ": periodOClock,
	},
	LangTamil: {
		"காலை": periodMorning, "மதியம்": periodAfternoon,
		"மாலை": periodEvening, "இரவு": periodNight, "மணிக்கு": periodOClock,
	},
	LangTelugu: {
		"ఉదయం": periodMorning, "మధ్యాహ్నం": periodAfternoon,
		"సాయంత్రం": periodEvening, "రాత్రి": periodNight, "గంటలకు": periodOClock,
	},
	LangMalayalam: {
		"രാവിലെ": periodMorning, "ഉച്ചയ്ക്ക്": periodAfternoon,
		"വൈകുന്നേരം": periodEvening, "രാത്രി": periodNight, "മണിക്ക്": periodOClock,
	},
}
