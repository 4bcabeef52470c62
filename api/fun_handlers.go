package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Aidin1998/apihub/internal/generator"
)

func (s *Server) famousQuote(c *gin.Context) {
	quote, err := s.gen.FamousQuote()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (s *Server) kanyeQuote(c *gin.Context) {
	c.JSON(http.StatusOK, s.gen.KanyeQuote())
}

func (s *Server) badJoke(c *gin.Context) {
	joke, err := s.gen.BadJoke()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"joke": joke})
}

func (s *Server) chuckNorrisJoke(c *gin.Context) {
	joke, err := s.upstream.RandomJoke(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, joke)
}

func (s *Server) animalFact(c *gin.Context) {
	animal, err := generator.ParseAnimal(c.Query("animal"))
	if err != nil {
		fail(c, err)
		return
	}
	fact, err := s.gen.AnimalFact(animal)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"animal": animal.String(), "fact": fact})
}

func (s *Server) randomHexColor(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"hex_color": s.gen.HexColor()})
}

func (s *Server) randomEmoji(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"emoji": s.gen.Emoji()})
}

func (s *Server) randomYesNo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"answer": s.gen.YesNo()})
}

func (s *Server) randomName(c *gin.Context) {
	gender, err := generator.ParseGender(c.Query("gender"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s.gen.Name(gender))
}

type passwordQuery struct {
	Length           int  `form:"length,default=12"`
	IncludeUppercase bool `form:"include_uppercase,default=true"`
	IncludeLowercase bool `form:"include_lowercase,default=true"`
	IncludeDigits    bool `form:"include_digits,default=true"`
	IncludeSymbols   bool `form:"include_symbols,default=true"`
}

func (s *Server) randomPassword(c *gin.Context) {
	var q passwordQuery
	if !bindQuery(c, &q) {
		return
	}
	password, err := s.gen.Password(q.Length, generator.PasswordCriteria{
		IncludeUppercase: q.IncludeUppercase,
		IncludeLowercase: q.IncludeLowercase,
		IncludeDigits:    q.IncludeDigits,
		IncludeSymbols:   q.IncludeSymbols,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, password)
}

type numberQuery struct {
	Min int64 `form:"min,default=1"`
	Max int64 `form:"max,default=100"`
}

func (s *Server) randomNumber(c *gin.Context) {
	var q numberQuery
	if !bindQuery(c, &q) {
		return
	}
	n, err := s.gen.Number(q.Min, q.Max)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"min": q.Min, "max": q.Max, "number": n})
}

func (s *Server) magic8Ball(c *gin.Context) {
	var q struct {
		Question string `form:"question" binding:"required"`
	}
	if !bindQuery(c, &q) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"question": q.Question, "answer": s.gen.Magic8Ball()})
}

func (s *Server) flipCoin(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"result": s.gen.CoinFlip()})
}

func (s *Server) rollDice(c *gin.Context) {
	var q struct {
		Sides int `form:"sides,default=6"`
	}
	if !bindQuery(c, &q) {
		return
	}
	roll, err := s.gen.RollDice(q.Sides)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sides": q.Sides, "roll": roll})
}
