package domain

import "fmt"

// Course is a running course the service reports on.
type Course struct {
	ID     string  `json:"id" validate:"required"`
	NameKo string  `json:"name_ko" validate:"required"`
	NameEn string  `json:"name_en" validate:"required"`
	Lat    float64 `json:"lat" validate:"latitude"`
	Lon    float64 `json:"lon" validate:"longitude"`
}

// Courses is the fixed catalogue, in display order.
var Courses = []Course{
	{ID: "seoho-park", NameKo: "서호공원", NameEn: "Seoho Park", Lat: 37.280325, Lon: 126.990396},
	{ID: "youth-center", NameKo: "청소년문화센터", NameEn: "Youth Culture Center", Lat: 37.274248, Lon: 127.034519},
	{ID: "gwanggyo-lake-park", NameKo: "광교호수공원", NameEn: "Gwanggyo Lake Park", Lat: 37.283439, Lon: 127.065989},
	{ID: "skku", NameKo: "성균관대학교", NameEn: "Sungkyunkwan Univ. (Suwon)", Lat: 37.293788, Lon: 126.974365},
	{ID: "woncheon-stream-sindong", NameKo: "원천리천(신동)", NameEn: "Woncheon Stream (Sindong)", Lat: 37.248469, Lon: 127.041965},
	{ID: "paldalsan-hwaseong", NameKo: "팔달산(수원화성, 행궁동)", NameEn: "Paldalsan Fortress Area", Lat: 37.277614, Lon: 127.010650},
	{ID: "suwon-stream", NameKo: "수원천", NameEn: "Suwoncheon Stream", Lat: 37.266571, Lon: 127.015022},
	{ID: "gwanggyo-mountain", NameKo: "광교산", NameEn: "Gwanggyo Mountain", Lat: 37.328633, Lon: 127.038172},
	{ID: "suwon-worldcup", NameKo: "수원월드컵경기장", NameEn: "Suwon World Cup Stadium", Lat: 37.286545, Lon: 127.036871},
	{ID: "dongtan-yeoul-park", NameKo: "동탄여울공원", NameEn: "Dongtan Yeoul Park", Lat: 37.198689, Lon: 127.086609},
	{ID: "yeongheung-forest-park", NameKo: "영흥숲공원", NameEn: "Yeongheung Forest Park", Lat: 37.261067, Lon: 127.070470},
	{ID: "majung-park", NameKo: "마중공원", NameEn: "Majung Park", Lat: 37.236832, Lon: 127.020592},
}

var courseIndex = func() map[string]int {
	idx := make(map[string]int, len(Courses))
	for i, c := range Courses {
		idx[c.ID] = i
	}
	return idx
}()

// LookupCourse finds a course in the catalogue by ID.
func LookupCourse(id string) (Course, error) {
	i, ok := courseIndex[id]
	if !ok {
		return Course{}, fmt.Errorf("%w: %q", ErrUnknownCourse, id)
	}
	return Courses[i], nil
}

// CourseOrder returns the display position of a course, or -1.
func CourseOrder(id string) int {
	if i, ok := courseIndex[id]; ok {
		return i
	}
	return -1
}
