package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Aidin1998/apihub/common/errors"
	"github.com/Aidin1998/apihub/internal/devtools"
	"github.com/Aidin1998/apihub/internal/transform"
	"github.com/Aidin1998/apihub/internal/upstream"
)

func (s *Server) parseUserAgent(c *gin.Context) {
	c.JSON(http.StatusOK, devtools.ParseUserAgent(c.Request.UserAgent()))
}

type ipInfoResponse struct {
	IPAddress        string                `json:"ip_address"`
	Geolocation      *upstream.Geolocation `json:"geolocation,omitempty"`
	GeolocationError string                `json:"geolocation_error,omitempty"`
}

// ipInfo reports the caller address. Geolocation failures never fail the
// request.
func (s *Server) ipInfo(c *gin.Context) {
	resp := ipInfoResponse{IPAddress: devtools.ClientIP(c.Request)}
	if s.upstream.GeolocationEnabled() && devtools.IsPublicIP(resp.IPAddress) {
		geo, err := s.upstream.Geolocate(c.Request.Context(), resp.IPAddress)
		if err != nil {
			s.logger.Warn("Geolocation failed", zap.String("ip", resp.IPAddress), zap.Error(err))
			resp.GeolocationError = "Could not fetch geolocation data."
		} else {
			resp.Geolocation = &geo
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) httpStatus(c *gin.Context) {
	var q struct {
		Code int `form:"code" binding:"required"`
	}
	if !bindQuery(c, &q) {
		return
	}
	explanation, err := devtools.ExplainStatus(q.Code)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, explanation)
}

func (s *Server) generateUUID(c *gin.Context) {
	var q struct {
		Version int `form:"version,default=4"`
		Count   int `form:"count,default=1"`
	}
	if !bindQuery(c, &q) {
		return
	}
	ids, err := devtools.GenerateUUIDs(q.Version, q.Count)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"version": q.Version, "count": len(ids), "uuids": ids})
}

type unitRequest struct {
	Value    *decimal.Decimal `json:"value" binding:"required"`
	FromUnit string           `json:"from_unit" binding:"required"`
	ToUnit   string           `json:"to_unit" binding:"required"`
	Category string           `json:"category" binding:"required"`
}

func (s *Server) convertUnit(c *gin.Context) {
	var req unitRequest
	if !bindJSON(c, &req) {
		return
	}
	category, err := transform.ParseCategory(req.Category)
	if err != nil {
		fail(c, err)
		return
	}
	converted, err := transform.ConvertUnit(*req.Value, req.FromUnit, req.ToUnit, category)
	if err != nil {
		fail(c, err)
		return
	}
	floats, err := toFloats(map[string]decimal.Decimal{"value": *req.Value, "converted_value": converted})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"original_value":  floats["value"],
		"from_unit":       req.FromUnit,
		"to_unit":         req.ToUnit,
		"category":        category.String(),
		"converted_value": floats["converted_value"],
	})
}

type timestampResponse struct {
	Operation string `json:"operation"`
	Input     any    `json:"input"`
	transform.Timestamp
}

func (s *Server) convertTimestamp(c *gin.Context) {
	var req struct {
		Value     any    `json:"value"`
		Operation string `json:"operation" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if req.Value == nil {
		fail(c, errors.Invalid.Explain("Request validation failed").WithField("required", "value", "value is required"))
		return
	}
	op, err := transform.ParseTimestampOp(req.Operation)
	if err != nil {
		fail(c, err)
		return
	}
	ts, err := transform.ConvertTimestamp(op, req.Value)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, timestampResponse{Operation: op.String(), Input: req.Value, Timestamp: ts})
}

type calculatorRequest struct {
	A         *decimal.Decimal `json:"a" binding:"required"`
	B         *decimal.Decimal `json:"b" binding:"required"`
	Operation string           `json:"operation" binding:"required"`
}

func (s *Server) calculate(c *gin.Context) {
	var req calculatorRequest
	if !bindJSON(c, &req) {
		return
	}
	op, err := transform.ParseOperation(req.Operation)
	if err != nil {
		fail(c, err)
		return
	}
	result, err := transform.Calculate(*req.A, *req.B, op)
	if err != nil {
		fail(c, err)
		return
	}
	floats, err := toFloats(map[string]decimal.Decimal{"a": *req.A, "b": *req.B, "result": result})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"a":            floats["a"],
		"b":            floats["b"],
		"operation":    op.String(),
		"result":       floats["result"],
		"result_exact": result.String(),
	})
}

// toFloats converts the numeric response fields and fails if any of them is
// outside float64 range.
func toFloats(values map[string]decimal.Decimal) (map[string]float64, error) {
	out := make(map[string]float64, len(values))
	for name, d := range values {
		f, err := transform.ToFloat(name, d)
		if err != nil {
			return nil, err
		}
		out[name] = f
	}
	return out, nil
}

func (s *Server) decodeJWT(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	decoded, err := devtools.DecodeJWT(req.Token, s.now())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, decoded)
}

func (s *Server) generateTOTP(c *gin.Context) {
	var q struct {
		Issuer      string `form:"issuer,default=Common APIs Hub"`
		AccountName string `form:"account_name" binding:"required"`
	}
	if !bindQuery(c, &q) {
		return
	}
	key, err := devtools.GenerateTOTP(q.Issuer, q.AccountName, s.now())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, key)
}

func (s *Server) verifyTOTP(c *gin.Context) {
	var req struct {
		Secret string `json:"secret" binding:"required"`
		Code   string `json:"code" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	valid, err := devtools.VerifyTOTP(req.Secret, req.Code, s.now())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": valid})
}

func (s *Server) bcryptHash(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required"`
		Cost     int    `json:"cost"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if req.Cost == 0 {
		req.Cost = devtools.DefaultBcryptCost
	}
	hash, err := devtools.BcryptHash(req.Password, req.Cost)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hash": hash, "cost": req.Cost})
}

func (s *Server) bcryptVerify(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required"`
		Hash     string `json:"hash" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	valid, err := devtools.BcryptVerify(req.Password, req.Hash)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": valid})
}

func (s *Server) createShortURL(c *gin.Context) {
	var req struct {
		LongURL string `json:"long_url" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	short, err := s.shortener.Shorten(c.Request.Context(), req.LongURL, requestBase(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, short)
}

func (s *Server) redirectShortURL(c *gin.Context) {
	target, err := s.shortener.Resolve(c.Request.Context(), c.Param("code"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, target)
}

// requestBase is the scheme and host the client used to reach us.
func requestBase(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}
	host := c.Request.Host
	if fwd := c.GetHeader("X-Forwarded-Host"); fwd != "" {
		host = strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	return scheme + "://" + host
}
