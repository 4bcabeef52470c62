package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Aidin1998/apihub/internal/geo"
)

func (s *Server) countryInfo(c *gin.Context) {
	country, err := geo.FindCountry(s.data.Countries, c.Query("country_name"), c.Query("country_code_iso2"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, country)
}

func (s *Server) listTimezones(c *gin.Context) {
	zones := s.timezones.List(c.Query("prefix"))
	c.JSON(http.StatusOK, gin.H{"count": len(zones), "timezones": zones})
}

type timeConvertQuery struct {
	Datetime string `form:"dt_str"`
	FromTZ   string `form:"from_tz,default=UTC"`
	ToTZ     string `form:"to_tz,default=UTC"`
}

func (s *Server) convertTime(c *gin.Context) {
	var q timeConvertQuery
	if !bindQuery(c, &q) {
		return
	}
	conv, err := s.timezones.ConvertTime(q.Datetime, q.FromTZ, q.ToTZ, s.now())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, conv)
}

type holidaysQuery struct {
	CountryCode string `form:"country_code" binding:"required"`
	Year        int    `form:"year"`
}

func (s *Server) publicHolidays(c *gin.Context) {
	var q holidaysQuery
	if !bindQuery(c, &q) {
		return
	}
	if q.Year == 0 {
		q.Year = s.now().Year()
	}
	code := strings.ToUpper(strings.TrimSpace(q.CountryCode))
	holidays, err := geo.Holidays(code, q.Year)
	if err != nil {
		fail(c, err)
		return
	}
	resp := gin.H{"country_code": code, "year": q.Year, "holidays": holidays}
	if len(holidays) == 0 {
		resp["message"] = "No public holidays found for this country and year."
	}
	c.JSON(http.StatusOK, resp)
}
