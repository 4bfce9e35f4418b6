package arbor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/arborgfx/arbor/xform"
)

func TestCameraMatrixTracksNode(t *testing.T) {
	s := NewScene(xform.RigidMatrix)
	n := NewNode(s, "camera")
	cam := NewCamera(n)

	n.Translate(mgl64.Vec3{0, 0, 5}, xform.Global)
	// A point at the camera position maps to the origin in camera space.
	p := mgl64.TransformCoordinate(mgl64.Vec3{0, 0, 5}, cam.CameraMatrix())
	if p.Len() > epsilon {
		t.Errorf("camera position in camera space = %v, want origin", p)
	}

	n.Translate(mgl64.Vec3{3, 0, 0}, xform.Global)
	p = mgl64.TransformCoordinate(mgl64.Vec3{3, 0, 5}, cam.CameraMatrix())
	if p.Len() > epsilon {
		t.Errorf("camera matrix stale after move: %v", p)
	}
}

func TestCameraMatrixFollowsAncestors(t *testing.T) {
	s := NewScene(xform.RigidMatrix)
	rig := NewNode(s, "rig")
	n := NewNode(rig, "camera")
	cam := NewCamera(n)

	rig.Rotate(math.Pi/2, mgl64.Vec3{0, 1, 0}, xform.Global)
	n.Translate(mgl64.Vec3{0, 0, 2}, xform.Local)

	want := n.InvertedAbsoluteTransformation().Mat4()
	mat4Near(t, cam.CameraMatrix(), want)
}

func TestOrthographicProjection(t *testing.T) {
	s := NewScene(xform.Matrix)
	cam := NewCamera(NewNode(s, "camera"))
	cam.SetOrthographic(mgl64.Vec2{4, 2}, -1, 1)

	proj := cam.ProjectionMatrix()
	// Edges of the size rectangle land on the clip volume edges.
	p := mgl64.TransformCoordinate(mgl64.Vec3{2, 1, 0}, proj)
	if math.Abs(p.X()-1) > epsilon || math.Abs(p.Y()-1) > epsilon {
		t.Errorf("corner maps to %v, want (1, 1, _)", p)
	}
}

func TestAspectRatioPolicies(t *testing.T) {
	cases := []struct {
		name   string
		policy AspectRatioPolicy
		wantSX float64
		wantSY float64
	}{
		{"not preserved", AspectRatioNotPreserved, 1, 1},
		{"extend", AspectRatioExtend, 600.0 / 800.0, 1},
		{"clip", AspectRatioClip, 1, 800.0 / 600.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScene(xform.Matrix)
			cam := NewCamera(NewNode(s, "camera"))
			cam.SetOrthographic(mgl64.Vec2{2, 2}, -1, 1)
			cam.SetAspectRatioPolicy(tc.policy)
			cam.SetViewport(800, 600)

			proj := cam.ProjectionMatrix()
			if math.Abs(proj.At(0, 0)-tc.wantSX) > epsilon {
				t.Errorf("m00 = %v, want %v", proj.At(0, 0), tc.wantSX)
			}
			if math.Abs(proj.At(1, 1)-tc.wantSY) > epsilon {
				t.Errorf("m11 = %v, want %v", proj.At(1, 1), tc.wantSY)
			}
		})
	}
}

func TestAspectRatioFixWithoutViewport(t *testing.T) {
	s := NewScene(xform.Matrix)
	cam := NewCamera(NewNode(s, "camera"))
	cam.SetOrthographic(mgl64.Vec2{2, 2}, -1, 1)
	cam.SetAspectRatioPolicy(AspectRatioExtend)
	// No viewport yet: raw projection is used unchanged.
	if cam.ProjectionMatrix().At(0, 0) != 1 {
		t.Error("projection should be unscaled without a viewport")
	}
}

func TestDrawPassesRelativeTransformations(t *testing.T) {
	s := NewScene(xform.RigidMatrix)
	camNode := NewNode(s, "camera")
	camNode.Translate(mgl64.Vec3{0, 0, 10}, xform.Global)
	cam := NewCamera(camNode)

	objA := NewNode(s, "a")
	objA.Translate(mgl64.Vec3{1, 0, 0}, xform.Global)
	objB := NewNode(s, "b")
	objB.Translate(mgl64.Vec3{0, 2, 0}, xform.Global)

	var group DrawableGroup
	var got []mgl64.Mat4
	var gotCams []*Camera
	for _, n := range []*Node{objA, objB} {
		d := NewDrawable(n, &group)
		d.OnDraw = func(m mgl64.Mat4, c *Camera) {
			got = append(got, m)
			gotCams = append(gotCams, c)
		}
	}

	cam.Draw(&group)
	if len(got) != 2 {
		t.Fatalf("drew %d drawables, want 2", len(got))
	}
	mat4Near(t, got[0], mgl64.Translate3D(1, 0, -10))
	mat4Near(t, got[1], mgl64.Translate3D(0, 2, -10))
	if gotCams[0] != cam || gotCams[1] != cam {
		t.Error("drawables should receive the drawing camera")
	}
}

func TestDrawOutsideScenePanics(t *testing.T) {
	s := NewScene(xform.Matrix)
	n := NewNode(s, "camera")
	cam := NewCamera(n)
	s.RemoveChild(n)

	defer func() {
		if recover() == nil {
			t.Fatal("drawing with a detached camera should panic")
		}
	}()
	cam.Draw(&DrawableGroup{})
}

func TestDrawSkipsNilCallbacks(t *testing.T) {
	s := NewScene(xform.Matrix)
	cam := NewCamera(NewNode(s, "camera"))

	var group DrawableGroup
	NewDrawable(NewNode(s, "silent"), &group)
	cam.Draw(&group) // must not panic
}
