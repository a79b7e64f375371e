package components

import (
	"slices"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// AlarmItem is one row of the alarm list
type AlarmItem struct {
	ID     string
	Label  string // e.g. "07:30  Mon Wed"
	Status string // e.g. "ringing", "snoozed until 07:45", empty when idle
}

// AlarmListConfig configures the alarm list
type AlarmListConfig struct {
	OnRemove   func(id string)   // Called with the selected alarm's ID
	AddControl fyne.CanvasObject // Entry row shown next to the remove button (optional)
}

// AlarmList shows alarms in display order with a remove control
type AlarmList struct {
	list        *widget.List
	items       []AlarmItem
	selectedIdx int
	onRemove    func(string)
}

// NewAlarmList creates the list widget and the container holding it with its controls
func NewAlarmList(config AlarmListConfig) (*AlarmList, *fyne.Container) {
	al := &AlarmList{
		selectedIdx: -1,
		onRemove:    config.OnRemove,
	}

	al.list = widget.NewList(
		func() int {
			return len(al.items)
		},
		func() fyne.CanvasObject {
			status := widget.NewLabel("")
			status.Importance = widget.WarningImportance
			return container.NewBorder(nil, nil, nil, status, widget.NewLabel("00:00  Mon Tue Wed"))
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i >= len(al.items) {
				return
			}
			row := o.(*fyne.Container)
			item := al.items[i]
			row.Objects[0].(*widget.Label).SetText(item.Label)
			row.Objects[1].(*widget.Label).SetText(item.Status)
		})

	al.list.OnSelected = func(id widget.ListItemID) {
		al.selectedIdx = id
	}
	al.list.OnUnselected = func(widget.ListItemID) {
		al.selectedIdx = -1
	}

	removeButton := widget.NewButtonWithIcon("", theme.ContentRemoveIcon(), al.RemoveSelected)

	var controls fyne.CanvasObject = container.NewHBox(removeButton)
	if config.AddControl != nil {
		controls = container.NewBorder(nil, nil, nil, removeButton, config.AddControl)
	}

	listScroll := container.NewScroll(al.list)
	listScroll.SetMinSize(fyne.NewSize(0, 180))

	listWithBorder := container.NewBorder(
		widget.NewSeparator(),
		widget.NewSeparator(),
		nil,
		nil,
		listScroll,
	)

	return al, container.NewBorder(nil, controls, nil, nil, listWithBorder)
}

// SetItems replaces the rows, keeping the selection on the same alarm when it still exists
func (al *AlarmList) SetItems(items []AlarmItem) {
	selectedID := al.SelectedID()

	previous := al.selectedIdx
	al.items = items
	al.selectedIdx = slices.IndexFunc(items, func(item AlarmItem) bool {
		return selectedID != "" && item.ID == selectedID
	})
	switch {
	case al.selectedIdx < 0:
		al.list.UnselectAll()
	case al.selectedIdx != previous:
		al.list.Select(al.selectedIdx)
	}
	al.list.Refresh()
}

// Items returns the rows currently shown
func (al *AlarmList) Items() []AlarmItem {
	return al.items
}

// SelectedID returns the ID of the selected alarm, empty when nothing is selected
func (al *AlarmList) SelectedID() string {
	if al.selectedIdx < 0 || al.selectedIdx >= len(al.items) {
		return ""
	}
	return al.items[al.selectedIdx].ID
}

// Select selects the row at index
func (al *AlarmList) Select(index int) {
	al.list.Select(index)
}

// RemoveSelected asks the owner to remove the selected alarm.
// The row disappears on the next SetItems.
func (al *AlarmList) RemoveSelected() {
	id := al.SelectedID()
	if id == "" {
		return
	}
	al.list.UnselectAll()
	al.selectedIdx = -1
	if al.onRemove != nil {
		al.onRemove(id)
	}
}
