package services

// SampleFileName is the document materialised when the corpus is empty, so a
// fresh install can be exercised end to end before any real material is added.
const SampleFileName = "sample_course_content.txt"

// SampleContent is a small self-describing study guide.
const SampleContent = `Course Overview

Welcome to the course. This sample document was created automatically because
your course materials folder was empty. Replace it with your own lecture
notes, slides, and readings in PDF, Word, text, or Markdown format, then run the
setup again.

Study Tips

Review your notes within a day of each lecture. Spaced repetition beats
cramming: short, regular sessions spread over the week lead to better
retention than a single long session. Practice problems matter more than
re-reading; test yourself before checking the solutions.

Assessment

A typical course grade combines homework assignments, a midterm examination,
and a final examination. Check your syllabus for the exact weighting and for
the policy on late submissions.

Getting Help

If a topic is unclear, ask during office hours or post in the course forum.
Bring specific questions: pointing at the exact step where you got stuck makes
it much easier to help you.
`
