package video

import "gocv.io/x/gocv"

// Window previews frames on screen while a session runs.
type Window struct {
	win *gocv.Window
}

// NewWindow opens a preview window.
func NewWindow(title string) *Window {
	return &Window{win: gocv.NewWindow(title)}
}

// Show displays frame and reports whether any key was pressed.
func (w *Window) Show(frame gocv.Mat) bool {
	w.win.IMShow(frame)
	return w.win.WaitKey(1) >= 0
}

// Close destroys the window.
func (w *Window) Close() error {
	return w.win.Close()
}
