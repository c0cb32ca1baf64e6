package mathutil

import "encoding/json"

// Mat4JSON is the persisted form of a Mat4. Fields are addressed by row and
// column (m{row}{col}); the names are part of the storage format.
type Mat4JSON struct {
	M00 float64 `json:"m00"`
	M01 float64 `json:"m01"`
	M02 float64 `json:"m02"`
	M03 float64 `json:"m03"`
	M10 float64 `json:"m10"`
	M11 float64 `json:"m11"`
	M12 float64 `json:"m12"`
	M13 float64 `json:"m13"`
	M20 float64 `json:"m20"`
	M21 float64 `json:"m21"`
	M22 float64 `json:"m22"`
	M23 float64 `json:"m23"`
	M30 float64 `json:"m30"`
	M31 float64 `json:"m31"`
	M32 float64 `json:"m32"`
	M33 float64 `json:"m33"`
}

// Serialise maps the column-major buffer to row/column named fields.
func (m Mat4) Serialise() Mat4JSON {
	return Mat4JSON{
		M00: m[0], M01: m[4], M02: m[8], M03: m[12],
		M10: m[1], M11: m[5], M12: m[9], M13: m[13],
		M20: m[2], M21: m[6], M22: m[10], M23: m[14],
		M30: m[3], M31: m[7], M32: m[11], M33: m[15],
	}
}

// Deserialise is the exact inverse of Serialise.
func (m *Mat4) Deserialise(j Mat4JSON) *Mat4 {
	return m.Set(
		j.M00, j.M01, j.M02, j.M03,
		j.M10, j.M11, j.M12, j.M13,
		j.M20, j.M21, j.M22, j.M23,
		j.M30, j.M31, j.M32, j.M33,
	)
}

// Mat4FromJSON builds a matrix from its persisted form.
func Mat4FromJSON(j Mat4JSON) Mat4 {
	var m Mat4
	m.Deserialise(j)
	return m
}

func (m Mat4) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Serialise())
}

func (m *Mat4) UnmarshalJSON(data []byte) error {
	var j Mat4JSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	m.Deserialise(j)
	return nil
}
