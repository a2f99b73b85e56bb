package listing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSkillList_AcceptsArrayOrString(t *testing.T) {
	var req CreateLaborReq
	require.NoError(t, json.Unmarshal([]byte(`{"skills":["plough","harvest"]}`), &req))
	require.Equal(t, SkillList{"plough", "harvest"}, req.Skills)

	req = CreateLaborReq{}
	require.NoError(t, json.Unmarshal([]byte(`{"skills":"plough,harvest"}`), &req))
	require.Equal(t, SkillList{"plough", "harvest"}, req.Skills)

	require.Error(t, json.Unmarshal([]byte(`{"skills":42}`), &req))
}
