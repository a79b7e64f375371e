//go:build darwin

package platform

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa -framework AppKit
#import <Cocoa/Cocoa.h>
#import <AppKit/AppKit.h>

int
appIsFrontmost(void) {
    return [NSApp isActive] ? 1 : 0;
}

void
bringAppForward(void) {
    [NSApp activateIgnoringOtherApps:YES];
}

void
setDockVisible(int visible) {
    if (visible) {
        [NSApp setActivationPolicy:NSApplicationActivationPolicyRegular];
    } else {
        [NSApp setActivationPolicy:NSApplicationActivationPolicyAccessory];
    }
}
*/
import "C"
import "log"

// IsAppActive reports whether the clock is the frontmost application
func IsAppActive() bool {
	return C.appIsFrontmost() == 1
}

// ActivateApp pulls the clock in front of other applications so a ringing alarm is seen
func ActivateApp() {
	C.bringAppForward()
}

// SetDockVisible shows or hides the dock icon. The clock hides it while it lives only in the tray.
func SetDockVisible(visible bool) {
	log.Printf("Setting dock icon visible: %v", visible)
	v := C.int(0)
	if visible {
		v = 1
	}
	C.setDockVisible(v)
}
