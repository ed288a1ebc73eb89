package models

// Thread anchor convention, shared between the task layer and the
// architecture backends: a reserved register holds a pointer to the
// running thread's control block, and the trap frame sits at a fixed
// offset inside that block. The task layer reserves the first
// TrapFrameOffset bytes of each control block for its own header.
const TrapFrameOffset = 64
