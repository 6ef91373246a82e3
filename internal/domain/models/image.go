package models

// ImageAsset одно оптимизированное изображение, готовое к встраиванию в запись
type ImageAsset struct {
	DataURI  string  `json:"data_uri"`
	Format   string  `json:"format"`
	SizeKB   float64 `json:"size_kb"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Quality  float64 `json:"quality"`
	Attempts int     `json:"attempts"`
}

// RejectedFile describes an input file that could not be turned into an asset.
type RejectedFile struct {
	Index    int    `json:"index"`
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}
