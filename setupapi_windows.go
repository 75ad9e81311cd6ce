package ports

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

// cfgmgr32 entry points for the device-tree parent walk; x/sys wraps the
// SetupDi family but not these.
var (
	modcfgmgr32           = windows.NewLazySystemDLL("cfgmgr32.dll")
	procCMGetParent       = modcfgmgr32.NewProc("CM_Get_Parent")
	procCMGetDeviceIDSize = modcfgmgr32.NewProc("CM_Get_Device_ID_Size")
	procCMGetDeviceID     = modcfgmgr32.NewProc("CM_Get_Device_IDW")
	procCMMapCrToWin32Err = modcfgmgr32.NewProc("CM_MapCrToWin32Err")
)

// cmError is a CONFIGRET code; 0 is success.
type cmError uint32

func (e cmError) toError() error {
	if e == 0 {
		return nil
	}
	winErr, _, _ := procCMMapCrToWin32Err.Call(uintptr(e), 0)
	if winErr != 0 {
		return windows.Errno(winErr)
	}
	return fmt.Errorf("configuration manager error %d", uint32(e))
}

// devInstParent returns the parent device instance, or ok=false at the root
// of the tree. The signature matches the device-tree walker's parentLookup.
func devInstParent(devInst uint32) (uint32, bool) {
	var parent uint32
	ret, _, _ := procCMGetParent.Call(uintptr(unsafe.Pointer(&parent)), uintptr(devInst), 0)
	if cmError(ret) != 0 {
		return 0, false
	}
	return parent, true
}

// devInstID returns the device instance identifier string, the raw hardware
// id fed to the parser. The signature matches the walker's instanceIDLookup.
func devInstID(devInst uint32) (string, bool) {
	var size uint32
	ret, _, _ := procCMGetDeviceIDSize.Call(uintptr(unsafe.Pointer(&size)), uintptr(devInst), 0)
	if cmError(ret) != 0 || size == 0 {
		return "", false
	}

	buf := make([]uint16, size+1)
	ret, _, _ = procCMGetDeviceID.Call(uintptr(devInst), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)), 0)
	if cmError(ret) != 0 {
		return "", false
	}
	return windows.UTF16ToString(buf), true
}

// deviceStringProperty reads a registry string property of a device node,
// returning "" when the property is absent or not a string.
func deviceStringProperty(set windows.DevInfo, data *windows.DevInfoData, prop windows.SPDRP) string {
	value, err := set.DeviceRegistryProperty(data, prop)
	if err != nil {
		return ""
	}
	s, _ := value.(string)
	return s
}

// devicePortName resolves the logical port name from the device's hardware
// registry key, trying the PortName string value first and the PortNumber
// numeric value as fallback.
func devicePortName(set windows.DevInfo, data *windows.DevInfoData) (string, bool) {
	h, err := set.OpenDevRegKey(data, windows.DICS_FLAG_GLOBAL, 0, windows.DIREG_DEV, windows.KEY_READ)
	if err != nil {
		return "", false
	}
	key := registry.Key(h)
	defer key.Close()

	if name, _, err := key.GetStringValue("PortName"); err == nil && name != "" {
		return name, true
	}
	if number, _, err := key.GetIntegerValue("PortNumber"); err == nil {
		return fmt.Sprintf("COM%d", number), true
	}
	return "", false
}
