package classify

// Keyword tables are configuration, not logic: the gate is recall-oriented
// and matches literal substrings, so adding a language or a festival is a
// table edit. Entries must be lowercase.

var festivalKeywords = []string{
	// English
	"diwali", "deepavali", "holi", "navratri", "dussehra", "dasara",
	"ganesh chaturthi", "vinayaka chavithi", "janmashtami", "krishna jayanthi",
	"maha shivaratri", "shivratri", "ram navami", "hanuman jayanti",
	"raksha bandhan", "rakhi", "karwa chauth", "makar sankranti", "pongal",
	"onam", "vishu", "ugadi", "gudi padwa", "baisakhi", "chhath puja",
	"ratha yatra", "akshaya tritiya", "vasant panchami", "guru purnima",
	"varalakshmi", "durga puja", "kali puja", "bhai dooj", "govardhan puja",
	"dhanteras", "naraka chaturdashi", "skanda sashti", "thaipusam",
	"karthigai deepam", "aadi perukku", "navaratri",
	// Hindi
	"दिवाली", "दीपावली", "होली", "नवरात्रि", "दशहरा", "जन्माष्टमी",
	"महाशिवरात्रि", "शिवरात्रि", "रामनवमी", "रक्षाबंधन", "करवा चौथ",
	"मकर संक्रांति", "गणेश चतुर्थी", "छठ पूजा", "धनतेरस",
	// Kannada
	"ದೀಪಾವಳಿ", "ಹೋಳಿ", "ನವರಾತ್ರಿ", "ದಸರಾ", "ಯುಗಾದಿ", "ಗಣೇಶ ಚತುರ್ಥಿ",
	"ಶಿವರಾತ್ರಿ", "ಸಂಕ್ರಾಂತಿ",
	// Tamil
	"தீபாவளி", "பொங்கல்", "நவராத்திரி", "விநாயகர் சதுர்த்தி", "சிவராத்திரி",
	"தைப்பூசம்", "கார்த்திகை தீபம்",
	// Telugu
	"దీపావళి", "ఉగాది", "వినాయక చవితి", "దసరా", "శివరాత్రి", "సంక్రాంతి",
	// Malayalam
	"ഓണം", "വിഷു", "ദീപാവലി", "ശിവരാത്രി", "നവരാത്രി",
}

var panchangKeywords = []string{
	// English / transliterated
	"panchang", "panchangam", "panchanga", "tithi", "nakshatra", "nakshatram",
	"yoga", "karana", "karanam", "paksha", "amavasya", "purnima", "pournami",
	"ekadashi", "ekadasi", "chaturthi", "chaturdashi", "ashtami", "navami",
	"dwadashi", "trayodashi", "pradosh", "pradosham", "sankashti",
	"vinayaka chaturthi", "masa", "shukla", "krishna paksha", "lunar day",
	"moon phase", "new moon", "full moon",
	// Hindi
	"पंचांग", "तिथि", "नक्षत्र", "अमावस्या", "पूर्णिमा", "एकादशी", "पक्ष",
	"चतुर्थी", "अष्टमी", "प्रदोष",
	// Kannada
	"ಪಂಚಾಂಗ", "ತಿಥಿ", "ನಕ್ಷತ್ರ", "ಅಮಾವಾಸ್ಯೆ", "ಹುಣ್ಣಿಮೆ", "ಏಕಾದಶಿ",
	// Tamil
	"பஞ்சாங்கம்", "திதி", "நட்சத்திரம்", "அமாவாசை", "பௌர்ணமி", "ஏகாதசி",
	// Telugu
	"పంచాంగం", "తిథి", "నక్షత్రం", "అమావాస్య", "పౌర్ణమి", "ఏకాదశి",
	// Malayalam
	"പഞ്ചാംഗം", "തിഥി", "നക്ഷത്രം", "അമാവാസി", "പൗർണമി", "ഏകാദശി",
}

var timingKeywords = []string{
	// English / transliterated
	"muhurat", "muhurta", "muhurtham", "rahu kaal", "rahu kalam", "rahukalam",
	"yamaganda", "yamagandam", "gulika", "gulikai", "abhijit", "brahma muhurta",
	"auspicious time", "inauspicious time", "good time", "shubh", "subha",
	"choghadiya", "hora", "sunrise", "sunset", "moonrise", "lagna",
	// Hindi
	"मुहूर्त", "राहु काल", "शुभ समय", "अशुभ", "सूर्योदय", "सूर्यास्त",
	// Kannada
	"ಮುಹೂರ್ತ", "ರಾಹು ಕಾಲ", "ಶುಭ ಸಮಯ", "ಸೂರ್ಯೋದಯ",
	// Tamil
	"முகூர்த்தம்", "ராகு காலம்", "நல்ல நேரம்", "சூரிய உதயம்",
	// Telugu
	"ముహూర్తం", "రాహు కాలం", "శుభ సమయం", "సూర్యోదయం",
	// Malayalam
	"മുഹൂർത്തം", "രാഹു കാലം", "ശുഭ സമയം",
}

var ritualKeywords = []string{
	// English / transliterated
	"puja", "pooja", "pujan", "aarti", "arti", "abhishek", "abhishekam",
	"homa", "homam", "havan", "yagna", "yajna", "vrat", "vratam", "fasting",
	"fast", "upvas", "archana", "darshan", "prasad", "prasadam", "naivedya",
	"mantra", "japa", "stotra", "sahasranama", "kalash", "sankalp",
	"tarpanam", "shraddha", "pind daan", "satyanarayan", "rudrabhishek",
	"temple", "deity", "god", "goddess", "lord", "bhagwan", "devi", "shiva",
	"vishnu", "krishna", "rama", "ganesha", "ganapathi", "hanuman", "lakshmi",
	"saraswati", "durga", "parvati", "murugan", "venkateswara", "ayyappa",
	// Hindi
	"पूजा", "आरती", "व्रत", "उपवास", "हवन", "मंत्र", "मंदिर", "भगवान",
	"अभिषेक", "प्रसाद",
	// Kannada
	"ಪೂಜೆ", "ಆರತಿ", "ವ್ರತ", "ಉಪವಾಸ", "ಹೋಮ", "ಮಂತ್ರ", "ದೇವಸ್ಥಾನ",
	// Tamil
	"பூஜை", "ஆரத்தி", "விரதம்", "ஹோமம்", "மந்திரம்", "கோயில்", "கடவுள்",
	// Telugu
	"పూజ", "హారతి", "వ్రతం", "ఉపవాసం", "హోమం", "మంత్రం", "గుడి", "దేవుడు",
	// Malayalam
	"പൂജ", "ആരതി", "വ്രതം", "ഹോമം", "മന്ത്രം", "ക്ഷേത്രം",
}

var astrologyKeywords = []string{
	"astrology", "horoscope", "rashi", "rasi", "zodiac", "kundali",
	"janam kundli", "graha", "navagraha", "dosha", "manglik", "sade sati",
	"dasha", "gochar", "transit", "jyotish",
	"ज्योतिष", "राशि", "कुंडली", "ग्रह", "दोष",
	"ಜ್ಯೋತಿಷ್ಯ", "ರಾಶಿ", "ಕುಂಡಲಿ",
	"ஜோதிடம்", "ராசி", "ஜாதகம்",
	"జ్యోతిష్యం", "రాశి", "జాతకం",
	"ജ്യോതിഷം", "രാശി", "ജാതകം",
}

// todayNowPhrases mark a question as asking about the current day, which
// biases classification toward panchang.
var todayNowPhrases = []string{
	"today", "tonight", "right now", "now", "aaj", "आज", "ಇಂದು", "இன்று",
	"ఈ రోజు", "ఇవాళ", "ഇന്ന്",
}

var whenIsPhrases = []string{
	"when is", "when will", "what date", "which date", "kab hai", "कब है",
	"ಯಾವಾಗ", "எப்போது", "ఎప్పుడు", "എപ്പോൾ",
}
