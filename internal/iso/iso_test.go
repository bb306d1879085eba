package iso

import "testing"

func TestProjectRotations(t *testing.T) {
	tests := []struct {
		name      string
		wx, wy, z int
		rot       Rotation
		wantX     int
		wantY     int
	}{
		{"r0 origin", 0, 0, 0, 0, 0, 0},
		{"r0", 100, 300, 10, 0, 200, 190},
		{"r1", 100, 300, 10, 1, -400, 90},
		{"r2", 100, 300, 10, 2, -200, -210},
		{"r3", 100, 300, 10, 3, 400, -110},
		{"r1 truncates toward zero", 3, 0, 0, 1, -3, -1},
		{"r2 truncates toward zero", 1, 2, 0, 2, -1, -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sx, sy := Project(tc.wx, tc.wy, tc.z, tc.rot)
			if sx != tc.wantX || sy != tc.wantY {
				t.Errorf("Project(%d, %d, %d, %d) = (%d, %d), expected (%d, %d)",
					tc.wx, tc.wy, tc.z, tc.rot, sx, sy, tc.wantX, tc.wantY)
			}
		})
	}
}

func TestProjectDeterministic(t *testing.T) {
	for r := Rotation(0); r < RotationCount; r++ {
		for wx := -64; wx <= 64; wx += 13 {
			for wy := -64; wy <= 64; wy += 17 {
				for _, z := range []int{0, 7, 112, 0xFFFF} {
					x1, y1 := Project(wx, wy, z, r)
					x2, y2 := Project(wx, wy, z, r)
					if x1 != x2 || y1 != y2 {
						t.Fatalf("Project(%d, %d, %d, %d) not reproducible: (%d, %d) vs (%d, %d)",
							wx, wy, z, r, x1, y1, x2, y2)
					}
				}
			}
		}
	}
}

func TestProjectPanicsOnUnmaskedRotation(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Project with rotation 4 should panic")
		}
	}()
	Project(0, 0, 0, Rotation(4))
}

func TestViewOriginCentres(t *testing.T) {
	sizes := [][2]int{{640, 480}, {9608, 4928}, {101, 77}, {1, 1}}
	for zoom := 0; zoom <= 3; zoom++ {
		for _, size := range sizes {
			w, h := size[0], size[1]
			sx, sy := Project(2416, 2416, 112, 1)
			vx, vy := ViewOrigin(sx, sy, w, h, zoom)

			if got, want := sx-vx, (w<<zoom)/2; got != want {
				t.Errorf("zoom %d size %dx%d: sx-vx = %d, expected %d", zoom, w, h, got, want)
			}
			if got, want := sy-vy, (h<<zoom)/2; got != want {
				t.Errorf("zoom %d size %dx%d: sy-vy = %d, expected %d", zoom, w, h, got, want)
			}
		}
	}
}

func TestGiantSize(t *testing.T) {
	tests := []struct {
		mapSize, zoom int
		wantW, wantH  int
	}{
		{150, 0, 9608, 4928},
		{150, 1, 4808, 2528},
		{150, 3, 1208, 728},
		{255, 2, 4088, 2168},
	}

	for _, tc := range tests {
		w, h := GiantSize(tc.mapSize, tc.zoom)
		if w != tc.wantW || h != tc.wantH {
			t.Errorf("GiantSize(%d, %d) = (%d, %d), expected (%d, %d)",
				tc.mapSize, tc.zoom, w, h, tc.wantW, tc.wantH)
		}
	}
}

func TestMapCentre(t *testing.T) {
	tests := []struct{ mapSize, want int }{
		{150, 2416},
		{151, 2416},
		{64, 1040},
		{1, 16},
	}

	for _, tc := range tests {
		x, y := MapCentre(tc.mapSize)
		if x != tc.want || y != tc.want {
			t.Errorf("MapCentre(%d) = (%d, %d), expected (%d, %d)", tc.mapSize, x, y, tc.want, tc.want)
		}
	}
}

func TestMaskRotation(t *testing.T) {
	tests := []struct {
		in   int
		want Rotation
	}{
		{0, 0}, {2, 2}, {3, 3}, {4, 0}, {7, 3}, {-1, 3}, {258, 2},
	}

	for _, tc := range tests {
		if got := MaskRotation(tc.in); got != tc.want {
			t.Errorf("MaskRotation(%d) = %d, expected %d", tc.in, got, tc.want)
		}
	}

	if Rotation(3).Next() != 0 || Rotation(0).Prev() != 3 {
		t.Error("Next/Prev should wrap around")
	}
}

func TestElevation(t *testing.T) {
	if got := Elevation(0x1_0070); got != 0x70 {
		t.Errorf("Elevation(0x10070) = %#x, expected 0x70", got)
	}
	if got := Elevation(-1); got != 0xFFFF {
		t.Errorf("Elevation(-1) = %#x, expected 0xffff", got)
	}
}
