package api

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Aidin1998/apihub/internal/transform"
)

type textRequest struct {
	Text *string `json:"text" binding:"required"`
}

func (s *Server) convertCase(c *gin.Context) {
	var req textRequest
	if !bindJSON(c, &req) {
		return
	}
	target, err := transform.ParseCase(c.DefaultQuery("to_case", "uppercase"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"original":  *req.Text,
		"converted": transform.ConvertCase(*req.Text, target),
	})
}

func (s *Server) reverseString(c *gin.Context) {
	var req textRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"original": *req.Text,
		"reversed": transform.Reverse(*req.Text),
	})
}

func (s *Server) countWords(c *gin.Context) {
	var req textRequest
	if !bindJSON(c, &req) {
		return
	}
	stats := transform.CountWords(*req.Text)
	c.JSON(http.StatusOK, gin.H{
		"text":                           *req.Text,
		"word_count":                     stats.Words,
		"character_count_with_spaces":    stats.CharactersWithSpaces,
		"character_count_without_spaces": stats.CharactersNoSpaces,
		"line_count":                     stats.Lines,
	})
}

func (s *Server) generateSlug(c *gin.Context) {
	var req textRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"original": *req.Text,
		"slug":     transform.Slugify(*req.Text),
	})
}

type loremQuery struct {
	Type  string `form:"type,default=paragraphs"`
	Count int    `form:"count,default=3"`
}

func (s *Server) loremIpsum(c *gin.Context) {
	var q loremQuery
	if !bindQuery(c, &q) {
		return
	}
	kind, err := transform.ParseLoremKind(q.Type)
	if err != nil {
		fail(c, err)
		return
	}
	text, err := transform.Lorem(kind, q.Count)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"type": kind.String(), "count": q.Count, "text": text})
}

func (s *Server) prettyPrintJSON(c *gin.Context) {
	var req struct {
		JSONString *string `json:"json_string" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	pretty, err := transform.PrettyJSON(*req.JSONString)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"original": *req.JSONString, "pretty": pretty})
}

func (s *Server) csvToJSON(c *gin.Context) {
	var req struct {
		CSVData *string `json:"csv_data" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	records, err := transform.CSVToJSON(*req.CSVData)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"csv": *req.CSVData, "json": records})
}

func (s *Server) jsonToCSV(c *gin.Context) {
	var req struct {
		JSONData *string `json:"json_data" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	out, err := transform.JSONToCSV(*req.JSONData)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"json": *req.JSONData, "csv": out})
}

func (s *Server) markdownToHTML(c *gin.Context) {
	var req struct {
		MarkdownText *string `json:"markdown_text" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"markdown": *req.MarkdownText,
		"html":     transform.MarkdownToHTML(*req.MarkdownText),
	})
}

func (s *Server) yamlToJSON(c *gin.Context) {
	var req struct {
		YAMLData *string `json:"yaml_data" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	out, err := transform.YAMLToJSON(*req.YAMLData)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"yaml": *req.YAMLData, "json": json.RawMessage(out)})
}

func (s *Server) jsonToYAML(c *gin.Context) {
	var req struct {
		JSONData *string `json:"json_data" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	out, err := transform.JSONToYAML(*req.JSONData)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"json": *req.JSONData, "yaml": out})
}

func (s *Server) hashText(c *gin.Context) {
	var req struct {
		Text      *string `json:"text" binding:"required"`
		Algorithm string  `json:"algorithm"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if req.Algorithm == "" {
		req.Algorithm = transform.SHA256.String()
	}
	alg, err := transform.ParseAlgorithm(req.Algorithm)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"original":     *req.Text,
		"algorithm":    alg.String(),
		"hashed_value": transform.Hash(*req.Text, alg),
	})
}

type base64Request struct {
	Text    *string `json:"text" binding:"required"`
	URLSafe bool    `json:"url_safe"`
}

func (s *Server) base64Encode(c *gin.Context) {
	var req base64Request
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"original": *req.Text,
		"encoded":  transform.Base64Encode(*req.Text, req.URLSafe),
	})
}

func (s *Server) base64Decode(c *gin.Context) {
	var req base64Request
	if !bindJSON(c, &req) {
		return
	}
	decoded, err := transform.Base64Decode(*req.Text, req.URLSafe)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"original": *req.Text, "decoded": decoded})
}
