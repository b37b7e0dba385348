// Package domain scores outdoor running conditions for a fixed catalogue of
// running courses.
//
// # Data Source
//
// Observations originate from an upstream collector that polls Open-Meteo
// (KMA seamless model) or the Korea Meteorological Administration short-term
// APIs and publishes one JSON document per course to the Kafka source topic.
// [ParseRawObservation] normalizes that document into a canonical [Reading]
// and an optional [AirQualitySample]; nothing below that point knows which
// provider produced the numbers.
//
// # Provider Conventions
//
// Precipitation encodings (KMA RN1/PCP categories):
//
//	Numbers in mm:        0.5, "3.5mm"
//	No precipitation:     "강수없음"
//	Trace amounts:        "1mm 미만"  (treated as 0)
//	Open-ended heavy:     "50.0mm 이상" (treated as 50)
//	Ranges:               "30.0~50.0mm" (lower bound)
//
// Anything else degrades to 0 rather than failing. See [ParsePrecipitation].
//
// Wind speed: Open-Meteo reports km/h by default, KMA reports m/s. The
// normalizer converts to m/s before the engine sees it.
//
// Snow is never reported directly. It is inferred as precipitation not
// accounted for by rain, so sleet at the freezing boundary leans towards snow.
//
// # Scoring Model
//
// Four factors are classified independently with ordered band tables:
//
//	Temperature (apparent °C): ≤-15 5 | <-10 15 | <-5 30 | <0 45 | <5 60 |
//	                           <12 100 | <18 90 | <22 75 | <26 55 | <29 40 |
//	                           <31 25 | <33 10 | ≥33 0
//	Wind (m/s):                <2 100 | <4 80 | <6 60 | <8 40 | ≥8 25
//	Surface:                   dry 100 | heavy snow 0 | some snow 40 |
//	                           slightly wet 80 | wet 50 | very wet 20 |
//	                           extremely wet 0
//	Air (PM2.5, else PM10):    ≤15/30 100 | ≤35/80 80 | ≤75/150 55 | else 30
//	                           (90 when no sample is available)
//
// The run score is 0.6·temperature + 0.2·wind + 0.2·surface, multiplied by an
// air factor (1.0, 0.98, 0.8, 0.6). Flooded or snowed-in surfaces and
// dangerous apparent temperatures cap the result at 20. The final score is
// clamped to 0–100 and rounded half away from zero.
package domain
