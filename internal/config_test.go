package internal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfig_MaskRune(t *testing.T) {
	req := require.New(t)

	r, err := Config{MaskCharacter: "*"}.MaskRune()
	req.NoError(err)
	req.Equal('*', r)

	_, err = Config{MaskCharacter: "**"}.MaskRune()
	req.Error(err)

	_, err = Config{MaskCharacter: ""}.MaskRune()
	req.Error(err)
}

func TestConfig_Words(t *testing.T) {
	req := require.New(t)

	req.Equal([]string{"badger", "weasel"}, Config{CensoredWords: "badger, weasel"}.Words())
	req.Nil(Config{CensoredWords: " , "}.Words())
	req.Nil(Config{}.Words())
}

func TestConfig_Origins(t *testing.T) {
	req := require.New(t)

	req.Len(Config{}.Origins(), 2)
	req.Equal([]string{"https://app.example.com"},
		Config{CorsOrigins: " https://app.example.com "}.Origins())
}
