package tourtests

import "github.com/odysseywalk/tour-contract-tests/servicedef"

var (
	sanFrancisco = servicedef.LatLng{Lat: 37.7749, Lng: -122.4194}
	newYork      = servicedef.LatLng{Lat: 40.7128, Lng: -74.0060}
	london       = servicedef.LatLng{Lat: 51.5074, Lng: -0.1278}
	paris        = servicedef.LatLng{Lat: 48.8566, Lng: 2.3522}
)

func tourFrom(at servicedef.LatLng, label, theme string, minutes int) servicedef.TourGenerateParams {
	return servicedef.TourGenerateParams{
		Start:       servicedef.Start(at.Lat, at.Lng, label),
		Theme:       theme,
		DurationMin: servicedef.Minutes(minutes),
	}
}

// validTourParams is a fully specified request that every correct service accepts.
func validTourParams() servicedef.TourGenerateParams {
	p := tourFrom(sanFrancisco, "San Francisco", "history", 30)
	p.Lang = "en"
	p.VoiceStyle = "friendly"
	return p
}

func tourWithLabel(label string) servicedef.TourGenerateParams {
	return tourFrom(sanFrancisco, label, "history", 30)
}

func ttsText(text, lang string) servicedef.TTSParams {
	return servicedef.TTSParams{Text: servicedef.String(text), Lang: lang, ReturnBase64: true}
}
