package zensend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOriginatorType(t *testing.T) {
	got, err := ParseOriginatorType("MSISDN")
	require.NoError(t, err)
	assert.Equal(t, OriginatorTypeMsisdn, got)

	got, err = ParseOriginatorType("")
	require.NoError(t, err)
	assert.Equal(t, OriginatorTypeAlpha, got)

	_, err = ParseOriginatorType("numeric")
	assert.Error(t, err)
}

func TestParseEncoding(t *testing.T) {
	testCases := map[string]Encoding{"auto": EncodingAuto, "GSM": EncodingGSM, "ucs2": EncodingUCS2, "": EncodingAuto}
	for input, expected := range testCases {
		got, err := ParseEncoding(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, got, input)
	}

	_, err := ParseEncoding("utf8")
	assert.Error(t, err)
}

func TestEncodingParam(t *testing.T) {
	assert.Nil(t, EncodingAuto.param())
	assert.Equal(t, "gsm", *EncodingGSM.param())
	assert.Equal(t, "ucs2", *EncodingUCS2.param())
}
