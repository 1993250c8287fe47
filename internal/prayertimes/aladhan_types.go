package prayertimes

// aladhanResponse is the subset of the Al Adhan timings response we read.
type aladhanResponse struct {
	Code   int         `json:"code"`
	Status string      `json:"status"`
	Data   aladhanData `json:"data"`
}

type aladhanData struct {
	Timings map[string]string `json:"timings"`
	Date    aladhanDate       `json:"date"`
	Meta    aladhanMeta       `json:"meta"`
}

type aladhanDate struct {
	Readable string       `json:"readable"`
	Hijri    aladhanHijri `json:"hijri"`
}

type aladhanHijri struct {
	Day   string `json:"day"`
	Month struct {
		Number int    `json:"number"`
		En     string `json:"en"` // “Shaʿbān”, not our spelling
	} `json:"month"`
	Year string `json:"year"`
}

type aladhanMeta struct {
	Timezone string `json:"timezone"`
}
