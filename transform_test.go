package gamefw

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

func TestMultiplyAffineIdentity(t *testing.T) {
	identity := scaleAffine(1)
	m := [6]float64{2, 0, 0, 3, 10, 20}
	assertMatrix(t, "I*m", multiplyAffine(identity, m), m)
	assertMatrix(t, "m*I", multiplyAffine(m, identity), m)
}

func TestMultiplyAffineTranslateThenScale(t *testing.T) {
	// Scale(2) * Translate(5, -5): translate first, then scale.
	got := multiplyAffine(scaleAffine(2), translateAffine(5, -5))
	assertMatrix(t, "scale*translate", got, [6]float64{2, 0, 0, 2, 10, -10})

	x, y := transformPoint(got, 1, 1)
	assertNear(t, "x", x, 12)
	assertNear(t, "y", y, -8)
}

func TestCameraMatricesAreInverse(t *testing.T) {
	cam := NewCamera(Viewport{800, 600})
	cam.SetPosition(Vec2{-42, 17})
	if err := cam.SetZoom(1.5); err != nil {
		t.Fatal(err)
	}
	view := cam.computeViewMatrix()
	assertMatrix(t, "view", view, [6]float64{1.5, 0, 0, 1.5, 400 + 63, 300 - 25.5})
	assertMatrix(t, "view*inv", multiplyAffine(view, cam.invViewMatrix), scaleAffine(1))
	assertMatrix(t, "inv*view", multiplyAffine(cam.invViewMatrix, view), scaleAffine(1))
}

func TestTransformDeltaIgnoresTranslation(t *testing.T) {
	m := [6]float64{2, 0, 0, 2, 100, 100}
	d := transformDelta(m, Vec2{3, 4})
	assertNear(t, "dx", d.X, 6)
	assertNear(t, "dy", d.Y, 8)
}
