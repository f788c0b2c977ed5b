package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"propcheck/internal/checklist"
)

func TestMarshalJSONBFallbacks(t *testing.T) {
	assert.Equal(t, []byte("{}"), marshalJSONB(nil, "{}"))
	assert.Equal(t, []byte(`["a"]`), marshalJSONB([]string{"a"}, "[]"))
}

func TestUnmarshalChecklistTranslatesPending(t *testing.T) {
	st := unmarshalChecklist([]byte(`{"ext-roof":{"status":"pending","comment":"wet"}}`))
	assert.Equal(t, checklist.StatusUnchecked, st.ItemStatus("ext-roof"))
	assert.Equal(t, "wet", st.ItemComment("ext-roof"))

	assert.Empty(t, unmarshalChecklist(nil))
	assert.Empty(t, unmarshalChecklist([]byte("not json")))
}

func TestUnmarshalContainersNeverNil(t *testing.T) {
	assert.NotNil(t, unmarshalAmenities(nil))
	assert.NotNil(t, unmarshalPhotos(nil))
	assert.Nil(t, unmarshalGeo(nil))

	g := unmarshalGeo([]byte(`{"lat":1.5,"lng":-2}`))
	if assert.NotNil(t, g) {
		assert.Equal(t, 1.5, g.Lat)
	}
}
